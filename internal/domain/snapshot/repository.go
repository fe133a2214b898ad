package snapshot

// Store persists raw provider payloads. Writes replace the whole file,
// so a snapshot is either the previous complete payload or the new one.
type Store interface {
	WriteRaw(key Key, body []byte) error
	ReadRaw(key Key) ([]byte, error)
	Seasons() ([]string, error)
	HasSeason(season string) bool
}
