package staging

import (
	"encoding/json"
	"fmt"
	"strings"
)

// usernameToken is the placeholder substituted into project keys.
const usernameToken = "$USER_NAME"

// MergeConfig overlays host identity state onto the embedded configuration
// template and returns the merged document.
//
// Three rules, in order:
//  1. The user identifier comes from the host config's "userID" field, or
//     from the legacy "userId" spelling when the canonical one is absent or
//     empty.
//  2. The host's "oauthAccount" sub-document is carried over, defaulting to
//     an empty document when absent.
//  3. Every key of the template's "projects" mapping has the literal
//     $USER_NAME token replaced with the resolved username.
func MergeConfig(template, hostConfig []byte, username string) ([]byte, error) {
	var host map[string]any
	if err := json.Unmarshal(hostConfig, &host); err != nil {
		return nil, fmt.Errorf("failed to parse host configuration: %w", err)
	}

	var merged map[string]any
	if err := json.Unmarshal(template, &merged); err != nil {
		return nil, fmt.Errorf("failed to parse configuration template: %w", err)
	}

	userID, _ := host["userID"].(string)
	if userID == "" {
		userID, _ = host["userId"].(string)
	}
	merged["userID"] = userID

	oauth, ok := host["oauthAccount"]
	if !ok {
		oauth = map[string]any{}
	}
	merged["oauthAccount"] = oauth

	if projects, ok := merged["projects"].(map[string]any); ok {
		updated := make(map[string]any, len(projects))
		for key, value := range projects {
			updated[strings.ReplaceAll(key, usernameToken, username)] = value
		}
		merged["projects"] = updated
	}

	out, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode merged configuration: %w", err)
	}
	return out, nil
}
