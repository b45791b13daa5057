// Package credential manages the session password used to encrypt user data.
//
// The password is not chosen by the user: Manager generates a random one the
// first time it is needed and keeps it in a Store. Each platform has its own
// Store: BoltStore keeps the password in a small bbolt file, protected with
// DPAPI on Windows and stored as-is elsewhere. MemoryStore is for tests and
// for sessions that must not touch the disk.
//
// There is no process-wide singleton; callers construct a Manager with the
// Store they want and pass it to the components that need it.
//
//	store, err := credential.NewPlatformStore(profileDir)
//	if err != nil { ... }
//	defer store.Close()
//
//	pm := credential.NewManager(store)
//	password, err := pm.GetPassword()
package credential
