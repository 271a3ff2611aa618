//go:build lvc_tiny5

package config

const DefaultProfile = "tiny5"
