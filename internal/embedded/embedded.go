// Package embedded carries the assets baked into the launcher binary: the
// image build definition and the assistant configuration template.
package embedded

import _ "embed"

// Dockerfile is the image build definition, written into each run's build
// context at stage time.
//
//go:embed Dockerfile
var Dockerfile []byte

// ConfigTemplate is the default assistant configuration. Identity and auth
// fields are placeholders until host state is merged in.
//
//go:embed claude.template.json
var ConfigTemplate []byte
