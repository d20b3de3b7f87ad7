package cli

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/pgiban/internal/registry"
)

// sslModes contains valid PostgreSQL SSL modes for shell completion.
var sslModes = []string{"disable", "allow", "prefer", "require", "verify-ca", "verify-full"}

// authMethods contains the canonical --auth values for shell completion.
var authMethods = []string{"standard", "aws", "google", "azure"}

// completeSSLModes provides shell completion for SSL mode flag values.
func completeSSLModes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return filterPrefix(sslModes, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeAuthMethods provides shell completion for the --auth flag.
func completeAuthMethods(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return filterPrefix(authMethods, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeCountryCodes completes registry country codes, skipping those
// already on the command line. Matching is case-insensitive.
func completeCountryCodes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var matches []string
	for _, code := range filterPrefix(registry.Default().Codes(), strings.ToUpper(toComplete)) {
		if !slices.Contains(args, code) {
			matches = append(matches, code)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}

func filterPrefix(values []string, prefix string) []string {
	var matches []string
	for _, v := range values {
		if strings.HasPrefix(v, prefix) {
			matches = append(matches, v)
		}
	}
	return matches
}
