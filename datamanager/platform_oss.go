//go:build !chromeos && !android

package datamanager

const platformName = "oss"
