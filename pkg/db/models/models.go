package models

// All returns every persisted model, in FK dependency order. Used by the
// dev auto-migrate path and the sqlite test harness.
func All() []any {
	return []any{
		&Company{},
		&User{},
		&Product{},
		&Salesperson{},
		&Policy{},
		&RenewalStatus{},
		&CrossSelling{},
		&CrossSellingReminder{},
		&AccountEntry{},
		&UserPermission{},
		&InsuranceCompany{},
	}
}
