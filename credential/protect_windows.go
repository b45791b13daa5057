//go:build windows

package credential

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

func newBlob(data []byte) *windows.DataBlob {
	if len(data) == 0 {
		return &windows.DataBlob{}
	}

	return &windows.DataBlob{Size: uint32(len(data)), Data: &data[0]} //nolint:gosec
}

func blobBytes(blob *windows.DataBlob) []byte {
	defer windows.LocalFree(windows.Handle(unsafe.Pointer(blob.Data))) //nolint:errcheck

	out := make([]byte, blob.Size)
	copy(out, unsafe.Slice(blob.Data, blob.Size))

	return out
}

// protect encrypts plain with DPAPI for the current user.
func protect(plain []byte) ([]byte, error) {
	var out windows.DataBlob
	err := windows.CryptProtectData(newBlob(plain), nil, nil, 0, nil, windows.CRYPTPROTECT_UI_FORBIDDEN, &out)
	if err != nil {
		return nil, err
	}

	return blobBytes(&out), nil
}

func unprotect(sealed []byte) ([]byte, error) {
	var out windows.DataBlob
	err := windows.CryptUnprotectData(newBlob(sealed), nil, nil, 0, nil, windows.CRYPTPROTECT_UI_FORBIDDEN, &out)
	if err != nil {
		return nil, err
	}

	return blobBytes(&out), nil
}
