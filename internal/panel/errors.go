package panel

import "errors"

var (
	ErrStoreRequired = errors.New("panel: content store is required")
	ErrBufferClosed  = errors.New("panel: edit buffer has been closed")
	ErrNoOpenNode    = errors.New("panel: no node is open for editing")
)
