// ABOUTME: Thread-safe registry of portal modules and their menu trees.
// ABOUTME: Manages module registration, lookup, and admin menu mutations.

package module

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/2389/horizon-portal/internal/menu"
)

// ErrModuleAlreadyRegistered indicates a module with the same ID exists.
var ErrModuleAlreadyRegistered = errors.New("module already registered")

// ErrModuleNotFound indicates the specified module was not found.
var ErrModuleNotFound = errors.New("module not found")

// QuickAction is a launchpad shortcut into a module workflow.
type QuickAction struct {
	Label    string `json:"label"`
	Icon     string `json:"icon,omitempty"`
	Workflow string `json:"workflow"`
	SubMenu  string `json:"sub_menu,omitempty"`
}

// Stat is a headline figure shown on a module's launchpad card.
type Stat struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Icon  string `json:"icon,omitempty"`
}

// Config describes a portal module: a top-level application area that owns
// its own independent menu tree.
type Config struct {
	ID           string        `json:"id"`
	Category     string        `json:"category"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Icon         string        `json:"icon,omitempty"`
	ThemeColor   string        `json:"theme_color,omitempty"`
	QuickActions []QuickAction `json:"quick_actions,omitempty"`
	Stats        []Stat        `json:"stats,omitempty"`
}

// Module pairs a module config with its current menu tree.
type Module struct {
	Config Config
	Menu   menu.Tree
}

// Registry maintains the catalogue of portal modules. Menu trees are
// immutable values, so mutations swap the tree under the lock and readers
// always see a consistent snapshot.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]*Module
	order   []string
	logger  *slog.Logger
}

// NewRegistry creates an empty module registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		modules: make(map[string]*Module),
		logger:  logger.With("component", "modules"),
	}
}

// Register adds a module with its initial menu tree. The tree is validated
// for id uniqueness and known roles before the module is accepted.
// Returns ErrModuleAlreadyRegistered if the ID is taken.
func (r *Registry) Register(cfg Config, tree menu.Tree) error {
	if cfg.ID == "" {
		return fmt.Errorf("module id is required")
	}
	if err := tree.Validate(); err != nil {
		return fmt.Errorf("validating menu for module %q: %w", cfg.ID, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.modules[cfg.ID]; exists {
		return fmt.Errorf("%w: %s", ErrModuleAlreadyRegistered, cfg.ID)
	}

	r.modules[cfg.ID] = &Module{Config: cfg, Menu: tree}
	r.order = append(r.order, cfg.ID)

	r.logger.Info("module registered",
		"module_id", cfg.ID,
		"title", cfg.Title,
		"menu_nodes", tree.Len(),
	)
	return nil
}

// Get returns the module with the given ID, or ErrModuleNotFound.
func (r *Registry) Get(id string) (*Module, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.modules[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrModuleNotFound, id)
	}
	copied := *m
	return &copied, nil
}

// Known reports whether a module with the given ID is registered. It is
// the validation hook handed to the navigation location decoder.
func (r *Registry) Known(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.modules[id]
	return ok
}

// List returns all modules in registration order.
func (r *Registry) List() []*Module {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Module, 0, len(r.order))
	for _, id := range r.order {
		copied := *r.modules[id]
		out = append(out, &copied)
	}
	return out
}

// Menu returns the current menu tree for a module.
func (r *Registry) Menu(moduleID string) (menu.Tree, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.modules[moduleID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrModuleNotFound, moduleID)
	}
	return m.Menu, nil
}

// SetMenu replaces a module's menu tree wholesale, validating it first.
// Used when restoring persisted menu documents at startup.
func (r *Registry) SetMenu(moduleID string, tree menu.Tree) error {
	if err := tree.Validate(); err != nil {
		return fmt.Errorf("validating menu for module %q: %w", moduleID, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.modules[moduleID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrModuleNotFound, moduleID)
	}
	m.Menu = tree
	return nil
}

// InsertMenuItem inserts a node into a module's menu tree. An empty
// parentID appends at the root. The updated tree is returned so callers
// can persist it.
func (r *Registry) InsertMenuItem(moduleID, parentID string, node *menu.Node) (menu.Tree, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.modules[moduleID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrModuleNotFound, moduleID)
	}

	updated, err := m.Menu.Insert(parentID, node)
	if err != nil {
		return nil, fmt.Errorf("inserting menu item %q: %w", node.ID, err)
	}
	m.Menu = updated

	r.logger.Info("menu item added",
		"module_id", moduleID,
		"node_id", node.ID,
		"parent_id", parentID,
	)
	return updated, nil
}

// RemoveMenuItem removes a node (and its subtree) from a module's menu
// tree. Returns menu.ErrNodeNotFound when the node does not exist.
func (r *Registry) RemoveMenuItem(moduleID, nodeID string) (menu.Tree, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.modules[moduleID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrModuleNotFound, moduleID)
	}

	updated, removed := m.Menu.Remove(nodeID)
	if !removed {
		return nil, fmt.Errorf("removing menu item %q: %w", nodeID, menu.ErrNodeNotFound)
	}
	m.Menu = updated

	r.logger.Info("menu item removed",
		"module_id", moduleID,
		"node_id", nodeID,
	)
	return updated, nil
}

// UpdateMenuItem patches a node in a module's menu tree.
func (r *Registry) UpdateMenuItem(moduleID, nodeID string, patch menu.Patch) (menu.Tree, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.modules[moduleID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrModuleNotFound, moduleID)
	}

	updated, err := m.Menu.Update(nodeID, patch)
	if err != nil {
		return nil, fmt.Errorf("updating menu item %q: %w", nodeID, err)
	}
	m.Menu = updated

	r.logger.Info("menu item updated",
		"module_id", moduleID,
		"node_id", nodeID,
	)
	return updated, nil
}
