package config

import (
	"bytes"
	"errors"
	"os"

	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/postserve/internal/foundation/errors"
)

const exampleHeader = `# postserve configuration
#
# ${VAR} references are expanded from the environment. REMOTE_MARKDOWN_PATH,
# POSTSERVE_CONTENT_DIR and POSTSERVE_ADDR override remote.base_url,
# local.directory and server.addr.
`

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return derrors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return derrors.ConfigError("failed to inspect config path").WithCause(err).WithContext("path", configPath).Build()
	}

	example := Default()
	example.Site.Title = "My Blog"
	example.Site.BaseURL = "https://blog.example.com"
	example.Site.Description = "Notes and longer posts"
	example.Remote.BaseURL = "${REMOTE_BASE_URL}"

	var buf bytes.Buffer
	buf.WriteString(exampleHeader)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(example); err != nil {
		return derrors.InternalError("failed to marshal example config").WithCause(err).Build()
	}
	if err := enc.Close(); err != nil {
		return derrors.InternalError("failed to marshal example config").WithCause(err).Build()
	}

	if err := os.WriteFile(configPath, buf.Bytes(), 0o600); err != nil {
		return derrors.IOError("failed to write config file").WithCause(err).WithContext("path", configPath).Build()
	}
	return nil
}
