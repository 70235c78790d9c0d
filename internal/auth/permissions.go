package auth

// Permission constants name what an editor may do in the admin api.
// Role admin holds every permission.
const (
	// PermSettingsWrite allows editing site copy, theme colors and generic settings.
	PermSettingsWrite = "settings.write"
	// PermReviewsWrite allows creating, editing and deactivating reviews.
	PermReviewsWrite = "reviews.write"
	// PermTemplatesWrite allows adding catalog templates.
	PermTemplatesWrite = "templates.write"
	// PermEmailWrite allows editing email settings and sending test emails.
	PermEmailWrite = "email.write"
	// PermMediaWrite allows uploading and deleting media.
	PermMediaWrite = "media.write"
	// PermContactsRead allows listing contact submissions.
	PermContactsRead = "contacts.read"
	// PermStatsView allows reading the dashboard statistics.
	PermStatsView = "stats.view"
	// PermUsersManage allows creating and editing admin users.
	PermUsersManage = "users.manage"
	// PermConfigView allows reading the effective configuration, secrets redacted.
	PermConfigView = "config.view"
)

// AllPermissions lists every known permission.
func AllPermissions() []string {
	return []string{
		PermSettingsWrite,
		PermReviewsWrite,
		PermTemplatesWrite,
		PermEmailWrite,
		PermMediaWrite,
		PermContactsRead,
		PermStatsView,
		PermUsersManage,
		PermConfigView,
	}
}

// IsPermission reports whether name is a known permission.
func IsPermission(name string) bool {
	for _, p := range AllPermissions() {
		if p == name {
			return true
		}
	}

	return false
}
