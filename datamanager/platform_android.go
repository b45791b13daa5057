//go:build android && !chromeos

package datamanager

const platformName = "android"
