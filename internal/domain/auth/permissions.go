package auth

const (
	RoleAdmin    = "Admin"
	RoleHR       = "HR"
	RoleManager  = "Manager"
	RoleEmployee = "Employee"
)

var DefaultRoles = []string{RoleAdmin, RoleHR, RoleManager, RoleEmployee}

const (
	PermDirectoryRead    = "directory.read"
	PermDirectoryWrite   = "directory.write"
	PermPeriodsRead      = "periods.read"
	PermPeriodsWrite     = "periods.write"
	PermTemplatesRead    = "templates.read"
	PermTemplatesWrite   = "templates.write"
	PermAssignmentsRead  = "assignments.read"
	PermAssignmentsBuild = "assignments.build"
	PermLinksWrite       = "links.write"
	PermAppraisalsRead   = "appraisals.read"
	PermAppraisalsWrite  = "appraisals.write"
	PermReportsRead      = "reports.read"
	PermAuditRead        = "audit.read"
	PermSystemAdmin      = "admin.system"
)

var DefaultPermissions = []string{
	PermDirectoryRead,
	PermDirectoryWrite,
	PermPeriodsRead,
	PermPeriodsWrite,
	PermTemplatesRead,
	PermTemplatesWrite,
	PermAssignmentsRead,
	PermAssignmentsBuild,
	PermLinksWrite,
	PermAppraisalsRead,
	PermAppraisalsWrite,
	PermReportsRead,
	PermAuditRead,
	PermSystemAdmin,
}

var RolePermissions = map[string][]string{
	RoleEmployee: {
		PermDirectoryRead,
		PermPeriodsRead,
		PermTemplatesRead,
		PermAssignmentsRead,
		PermAppraisalsRead,
		PermAppraisalsWrite,
	},
	RoleManager: {
		PermDirectoryRead,
		PermPeriodsRead,
		PermTemplatesRead,
		PermAssignmentsRead,
		PermAppraisalsRead,
		PermAppraisalsWrite,
		PermReportsRead,
	},
	RoleHR: {
		PermDirectoryRead,
		PermDirectoryWrite,
		PermPeriodsRead,
		PermPeriodsWrite,
		PermTemplatesRead,
		PermTemplatesWrite,
		PermAssignmentsRead,
		PermAssignmentsBuild,
		PermLinksWrite,
		PermAppraisalsRead,
		PermAppraisalsWrite,
		PermReportsRead,
	},
	RoleAdmin: {
		PermDirectoryRead,
		PermDirectoryWrite,
		PermPeriodsRead,
		PermPeriodsWrite,
		PermTemplatesRead,
		PermTemplatesWrite,
		PermAssignmentsRead,
		PermAssignmentsBuild,
		PermLinksWrite,
		PermAppraisalsRead,
		PermAppraisalsWrite,
		PermReportsRead,
		PermAuditRead,
		PermSystemAdmin,
	},
}
