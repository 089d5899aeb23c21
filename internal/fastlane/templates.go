package fastlane

import (
	"bytes"
	"os"
	"path/filepath"
	"text/template"
)

// GenerateFastfile renders the three deploy lanes (beta, beta_patch,
// beta_minor) for the given scheme.
func GenerateFastfile(scheme string) (string, error) {
	tmpl, err := template.New("fastfile").Parse(fastfileTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct{ Scheme string }{Scheme: scheme}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteFastfile writes content to path, creating intermediate directories.
func WriteFastfile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

// fastfileTemplate reads the API key path from the environment at lane run
// time; launchpad injects it when invoking the lane.
const fastfileTemplate = `default_platform(:ios)

platform :ios do
  lane :beta do
    increment_build_number
    build_app(scheme: "{{.Scheme}}")
    upload_to_testflight(
      api_key_path: ENV["APP_STORE_CONNECT_API_KEY_KEY_FILEPATH"],
      skip_waiting_for_build_processing: true
    )
  end

  lane :beta_patch do
    increment_version_number(bump_type: "patch")
    increment_build_number(build_number: 1)
    build_app(scheme: "{{.Scheme}}")
    upload_to_testflight(
      api_key_path: ENV["APP_STORE_CONNECT_API_KEY_KEY_FILEPATH"],
      skip_waiting_for_build_processing: true
    )
  end

  lane :beta_minor do
    increment_version_number(bump_type: "minor")
    increment_build_number(build_number: 1)
    build_app(scheme: "{{.Scheme}}")
    upload_to_testflight(
      api_key_path: ENV["APP_STORE_CONNECT_API_KEY_KEY_FILEPATH"],
      skip_waiting_for_build_processing: true
    )
  end
end
`

// ExampleProjectConfig is written next to .launchpad.toml for team
// reference. It is a static template, never parsed back.
const ExampleProjectConfig = `# Launchpad configuration file
# Copy this to .launchpad.toml and customize for your project

[project]
ios_path = "ios"           # Path to iOS project directory
scheme = "YourAppScheme"   # Xcode scheme name
bundle_id = "com.example.app"

[deploy]
git_tag = true             # Create git tags after deploy
push_tags = true           # Push tags to remote
clean_artifacts = true     # Clean build artifacts after deploy
`
