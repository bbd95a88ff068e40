package sqlc

// DbManager groups the storage-backed managers handed to the transport
// layer. Analytics is the only one for now.
type DbManager struct {
	Analytics *AnalyticsManager
}

func NewDbManager(queries Querier) *DbManager {
	return &DbManager{
		Analytics: NewAnalyticsManager(queries),
	}
}
