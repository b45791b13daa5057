//go:build chromeos

package datamanager

const platformName = "chromeos"
