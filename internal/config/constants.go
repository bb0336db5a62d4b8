package config

// Lua schema globals and field names
const (
	luaGlobalWheels = "wheels"

	luaFieldPackage = "package"
	luaFieldRelease = "release"
	luaFieldTargets = "targets"

	luaFieldName            = "name"
	luaFieldLicense         = "license"
	luaFieldSummary         = "summary"
	luaFieldHomepage        = "homepage"
	luaFieldDescriptionFile = "description_file"

	luaFieldURL             = "url"
	luaFieldSignatureSuffix = "signature_suffix"

	luaFieldArchive   = "archive"
	luaFieldTag       = "tag"
	luaFieldPythonLib = "python_lib"
)
