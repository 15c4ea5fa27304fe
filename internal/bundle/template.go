package bundle

import "os"

// expandVars substitutes ${TOKEN} placeholders in a generated-source
// template. Unknown tokens expand to the empty string, never to the
// environment: templates here produce JavaScript, not shell.
func expandVars(template string, vars map[string]string) string {
	return os.Expand(template, func(key string) string {
		return vars[key]
	})
}
