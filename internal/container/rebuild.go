package container

import (
	"context"
	"fmt"
	"os"
	"time"
)

// Timestamp layouts the runtimes print for {{.Created}}: docker uses
// RFC3339Nano, podman prints Go's default time format.
var createdLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999 -0700 MST",
}

func parseCreated(raw string) (time.Time, error) {
	for _, layout := range createdLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized image timestamp: %q", raw)
}

// NeedsBuild applies the rebuild policy: build when the image is absent,
// when the build definition is newer than the image, or when caching is
// explicitly disabled. Returns the triggering reason for operator output.
func (e *Engine) NeedsBuild(ctx context.Context, image, dockerfilePath string, noCache bool) (bool, string) {
	if noCache {
		return true, "cache disabled"
	}

	if !e.ImageExists(ctx, image) {
		return true, "image not present"
	}

	info, err := os.Stat(dockerfilePath)
	if err != nil {
		// Cannot compare freshness; a rebuild is always safe.
		return true, "build definition unreadable"
	}
	created, err := e.ImageCreated(ctx, image)
	if err != nil {
		return true, "image creation time unreadable"
	}

	return needsRefresh(info.ModTime(), created)
}

// needsRefresh compares the build definition against the image it would
// replace.
func needsRefresh(definitionMod, imageCreated time.Time) (bool, string) {
	if definitionMod.After(imageCreated) {
		return true, "build definition newer than image"
	}
	return false, ""
}
