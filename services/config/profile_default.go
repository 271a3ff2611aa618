//go:build !lvc_3s && !lvc_tiny5

package config

// DefaultProfile is the build's profile. Tags lvc_3s and lvc_tiny5 select the
// others.
const DefaultProfile = "lipo-2s"
