package rbac

const (
	PermSetGenerate  = "set:generate"
	PermSetCheck     = "set:check"
	PermSetExplain   = "set:explain"
	PermMaterialView = "material:view"
	PermTutorChat    = "tutor:chat"
	PermAccountView  = "account:view"
	PermUsersManage  = "users:manage"
)

// RolePermissions is the default policy.
var RolePermissions = map[string][]string{
	"student": {
		"set:*",
		PermMaterialView,
		PermTutorChat,
		PermAccountView,
	},
	"admin": {
		"*", // everything
	},
}
