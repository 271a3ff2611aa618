//go:build lvc_3s && !lvc_tiny5

package config

const DefaultProfile = "lipo-3s"
