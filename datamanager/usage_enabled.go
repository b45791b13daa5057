//go:build !nousagerewriter

package datamanager

const usageRewriterEnabled = true
