package cart

// Store mirrors ledger state to a durable key-value slot. It never mutates
// state on its own; the ledger is the single writer.
//
// Implementations are best-effort: Load on a missing slot returns an empty
// state and no error, and a failed Save must not roll back the in-memory
// mutation it mirrors.
type Store interface {
	Load() (State, error)
	Save(state State) error
	Clear() error
}
