package content

import "embed"

// FS holds the navigation definition, catalog data, locale bundles and
// markdown pages shipped with the binary.
//
//go:embed navigation.yaml data locales pages resources
var FS embed.FS

// NavigationFile is the embedded navigation definition.
const NavigationFile = "navigation.yaml"
