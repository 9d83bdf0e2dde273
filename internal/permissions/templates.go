package permissions

// Known is the full set of permission flags understood by the API.
var Known = []string{
	"policies_view", "policies_add", "policies_edit", "policies_delete",
	"renewals_view", "renewals_edit", "renewals_status_update",
	"documents_upload", "documents_view", "documents_delete",
	"accounts_view", "accounts_add", "accounts_edit", "accounts_delete",
	"cross_selling_view", "cross_selling_add", "cross_selling_edit", "cross_selling_delete",
	"reports_view", "reports_generate",
	"settings_view", "settings_edit",
	"products_manage",
	"users_view", "users_add", "users_edit", "users_delete",
	"permissions_manage",
}

// RoleTemplates maps agency role names to their default permission sets.
// Flags absent from a template default to false.
var RoleTemplates = map[string]map[string]bool{
	"YÖNETİCİ": allTrue(),
	"SATIŞÇI": {
		"policies_add":   true,
		"policies_edit":  true,
		"renewals_view":  true,
		"documents_view": true,
		"reports_view":   true,
	},
	"MUHASEBECİ": {
		"policies_view":  true,
		"documents_view": true,
		"reports_view":   true,
	},
	"OPERATÖR": {
		"policies_view":          true,
		"policies_add":           true,
		"policies_edit":          true,
		"policies_delete":        true,
		"renewals_view":          true,
		"renewals_edit":          true,
		"renewals_status_update": true,
		"documents_upload":       true,
		"documents_view":         true,
		"documents_delete":       true,
	},
}

func allTrue() map[string]bool {
	out := make(map[string]bool, len(Known))
	for _, name := range Known {
		out[name] = true
	}
	return out
}

// IsKnown reports whether name is a recognized permission flag.
func IsKnown(name string) bool {
	for _, known := range Known {
		if known == name {
			return true
		}
	}
	return false
}

// TemplateFor returns a copy of the named role template.
func TemplateFor(role string) (map[string]bool, bool) {
	template, ok := RoleTemplates[role]
	if !ok {
		return nil, false
	}
	out := make(map[string]bool, len(Known))
	for _, name := range Known {
		out[name] = template[name]
	}
	return out, true
}
