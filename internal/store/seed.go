// ABOUTME: Demo seed data for an empty portal store
// ABOUTME: Six service members and a handful of in-flight requests

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/2389/horizon-portal/internal/menu"
)

// SeedDemoData populates an empty store with the demo roster, a set of
// in-flight requests, and the default workflow flags. A store that already
// has users is left untouched.
func SeedDemoData(ctx context.Context, s Store) error {
	users, err := s.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("checking existing users: %w", err)
	}
	if len(users) > 0 {
		return nil
	}

	for _, u := range demoUsers() {
		if err := s.CreateUser(ctx, u); err != nil {
			return fmt.Errorf("seeding user %s: %w", u.Username, err)
		}
	}
	for _, r := range demoRequests() {
		if err := s.SaveRequest(ctx, r); err != nil {
			return fmt.Errorf("seeding request %s: %w", r.ID, err)
		}
	}
	for _, wf := range []string{"laptop-request", "dispensation", "nws-policy"} {
		if err := s.SetWorkflowEnabled(ctx, wf, true); err != nil {
			return fmt.Errorf("seeding workflow flag %s: %w", wf, err)
		}
	}
	return nil
}

func demoUsers() []*User {
	return []*User{
		{
			ID: "1", Username: "Adm. J. Doe", Email: "j.doe@navy.mil",
			Role: menu.RoleSuperAdmin, Unit: "Pacific Fleet", Rank: "Admiral",
			Designation: "Fleet Commander", ServiceNumber: "USN-001-ALPHA",
			Phone: "312-555-0101", ClearanceLevel: "TOP SECRET",
			Status: UserStatusActive, ServiceYears: 25,
			DateOfJoining: "1998-06-15", DateOfSeniority: "2020-01-01", DateOfRetirement: "2030-06-15",
		},
		{
			ID: "2", Username: "Lt. T. Paris", Email: "t.paris@navy.mil",
			Role: menu.RoleNormalUser, Unit: "Voyager Ops", Rank: "Lieutenant",
			Designation: "Helmsman", ServiceNumber: "USN-042-DELTA",
			Phone: "312-555-0102", ClearanceLevel: "SECRET",
			Status: UserStatusActive, ServiceYears: 7,
			DateOfJoining: "2016-03-10", DateOfSeniority: "2021-05-15", DateOfRetirement: "2036-03-10",
		},
		{
			ID: "3", Username: "Cmdr. Data", Email: "data@navy.mil",
			Role: menu.RoleProcurementAdmin, Unit: "Cyber Command", Rank: "Commander",
			Designation: "Ops Officer", ServiceNumber: "USN-101-ZETA",
			Phone: "312-555-0103", ClearanceLevel: "TOP SECRET",
			Status: UserStatusActive, ServiceYears: 15,
			DateOfJoining: "2008-09-22", DateOfSeniority: "2022-11-01", DateOfRetirement: "2038-09-22",
		},
		{
			ID: "4", Username: "Ens. Crusher", Email: "w.crusher@navy.mil",
			Role: menu.RoleNormalUser, Unit: "Medical", Rank: "Ensign",
			Designation: "Acting Ensign", ServiceNumber: "USN-202-BETA",
			Phone: "312-555-0104", ClearanceLevel: "CONFIDENTIAL",
			Status: UserStatusPending, ServiceYears: 1,
			DateOfJoining: "2022-07-01", DateOfSeniority: "2022-07-01", DateOfRetirement: "2042-07-01",
		},
		{
			ID: "5", Username: "Capt. Sisko", Email: "b.sisko@navy.mil",
			Role: menu.RoleUnitAdmin, Unit: "DS9 Logistics", Rank: "Captain",
			Designation: "Station Commander", ServiceNumber: "USN-099-GAMMA",
			Phone: "312-555-0105", ClearanceLevel: "SECRET",
			Status: UserStatusActive, ServiceYears: 12,
			DateOfJoining: "2011-02-14", DateOfSeniority: "2019-08-01", DateOfRetirement: "2035-02-14",
		},
		{
			ID: "6", Username: "Lt. Barclay", Email: "r.barclay@navy.mil",
			Role: menu.RoleNormalUser, Unit: "Engineering", Rank: "Lieutenant",
			Designation: "Systems Analyst", ServiceNumber: "USN-088-SIGMA",
			Phone: "312-555-0106", ClearanceLevel: "SECRET",
			Status: UserStatusActive, ServiceYears: 5,
			DateOfJoining: "2018-11-05", DateOfSeniority: "2023-01-15", DateOfRetirement: "2038-11-05",
		},
	}
}

func demoRequests() []*Request {
	date := func(s string) time.Time {
		t, _ := time.Parse("2006-01-02T15:04:05", s)
		return t.UTC()
	}
	return []*Request{
		{
			ID: "REQ-1044", Type: RequestTypeLaptop,
			RequesterName: "Lt. Cmdr. Data", RequesterRank: "Lieutenant Commander",
			RequesterUnit: "Cyber Command", RequesterAvatar: "D",
			Title:       "High-Performance Workstation Request",
			SubmittedAt: date("2023-10-24T10:30:00"), Status: RequestStatusPending,
			Summary:      `Requesting issuance of MacBook Pro 16" for DevOps simulations and container orchestration tasks.`,
			DocumentURL:  "https://pdfobject.com/pdf/sample.pdf",
			NextApprover: "Capt. Picard",
		},
		{
			ID: "REQ-1045", Type: RequestTypeDispensation,
			RequesterName: "Ens. W. Crusher", RequesterRank: "Ensign",
			RequesterUnit: "Medical Ops", RequesterAvatar: "W",
			Title:       "Remote Access VPN Waiver",
			SubmittedAt: date("2023-10-25T09:15:00"), Status: RequestStatusPending,
			Summary:      "Requesting temporary waiver for VPN usage on non-standard device due to field deployment requirements in Sector 7.",
			DocumentURL:  "https://pdfobject.com/pdf/sample.pdf",
			NextApprover: "Lt. Cmdr. Tuvok",
		},
		{
			ID: "REQ-1042", Type: RequestTypePolicy,
			RequesterName: "Capt. Picard", RequesterRank: "Captain",
			RequesterUnit: "Bridge Command", RequesterAvatar: "P",
			Title:       "Policy Review: NWS-882",
			SubmittedAt: date("2023-10-23T14:00:00"), Status: RequestStatusPending,
			Summary:      "Annual review of Nuclear Weapons Safety policy. Acknowledgment required by all command staff before 30 OCT.",
			DocumentURL:  "https://pdfobject.com/pdf/sample.pdf",
			NextApprover: "Adm. Janeway",
		},
		{
			ID: "REQ-1039", Type: RequestTypeLaptop,
			RequesterName: "Lt. Barclay", RequesterRank: "Lieutenant",
			RequesterUnit: "Engineering", RequesterAvatar: "R",
			Title:       "Standard Terminal Replacement",
			SubmittedAt: date("2023-10-20T11:45:00"), Status: RequestStatusApproved,
			Summary:     "Replacement of damaged terminal. Screen flicker issue reported.",
			DocumentURL: "https://pdfobject.com/pdf/sample.pdf",
		},
		{
			ID: "REQ-1030", Type: RequestTypeDispensation,
			RequesterName: "Cmdr. Riker", RequesterRank: "Commander",
			RequesterUnit: "Bridge Command", RequesterAvatar: "R",
			Title:       "Emergency Comms Access",
			SubmittedAt: date("2023-10-18T08:00:00"), Status: RequestStatusRejected,
			Summary:     "Request denied due to insufficient security clearance for the requested band.",
			DocumentURL: "https://pdfobject.com/pdf/sample.pdf",
		},
	}
}
