package domain

// Admin console roles, ordered by privilege.
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleModerator  = "moderator"
)

// RoleRank orders admin roles for flat privilege checks.
var RoleRank = map[string]int{
	RoleModerator:  1,
	RoleAdmin:      2,
	RoleSuperAdmin: 3,
}

const (
	ProductStatusActive = "ACTIVE"
	ProductStatusSold   = "SOLD"
)

const (
	ConditionNew     = "NEW"
	ConditionLikeNew = "LIKE_NEW"
	ConditionGood    = "GOOD"
	ConditionFair    = "FAIR"
)

const (
	ReportStatusPending   = "PENDING"
	ReportStatusReviewed  = "REVIEWED"
	ReportStatusResolved  = "RESOLVED"
	ReportStatusDismissed = "DISMISSED"
)

// System setting keys. Rows are seeded at boot; the API only updates them.
const (
	SettingMaintenanceMode         = "maintenance_mode"
	SettingMaintenanceMessage      = "maintenance_message"
	SettingAPIEnabled              = "api_enabled"
	SettingRegistrationEnabled     = "registration_enabled"
	SettingLoginEnabled            = "login_enabled"
	SettingProductCreationEnabled  = "product_creation_enabled"
	SettingProductEditingEnabled   = "product_editing_enabled"
	SettingWishlistEnabled         = "wishlist_enabled"
	SettingMaxProductsPerUser      = "max_products_per_user"
	SettingMaxImagesPerProduct     = "max_images_per_product"
	SettingReportAutoFlagThreshold = "report_auto_flag_threshold"
	SettingMinPasswordLength       = "min_password_length"
	SettingSiteName                = "site_name"
	SettingSupportEmail            = "support_email"
	SettingAllowedCategories       = "allowed_categories"
)

// Setting categories, advisory grouping for the admin console.
const (
	CategorySystem   = "system"
	CategoryFeatures = "features"
	CategoryLimits   = "limits"
	CategorySecurity = "security"
	CategoryGeneral  = "general"
)

// Activity log action tags.
const (
	ActionSettingUpdated     = "setting_updated"
	ActionMaintenanceToggled = "maintenance_toggled"
	ActionEmergencyShutdown  = "emergency_shutdown"
	ActionUserSuspended      = "user_suspended"
	ActionUserUnsuspended    = "user_unsuspended"
	ActionUserUpdated        = "user_updated"
	ActionUserDeleted        = "user_deleted"
	ActionProductFlagged     = "product_flagged"
	ActionProductUnflagged   = "product_unflagged"
	ActionProductDeactivated = "product_deactivated"
	ActionProductDeleted     = "product_deleted"
	ActionReportUpdated      = "report_updated"
	ActionAdminCreated       = "admin_created"
	ActionAdminUpdated       = "admin_updated"
	ActionAdminLogin         = "admin_login"
)
