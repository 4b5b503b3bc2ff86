package entity

import "errors"

var (
	// ErrNotAvailable означает, что хост не поддерживает запрос или не вернул значение.
	ErrNotAvailable = errors.New("not available")
	// ErrStaleNode означает, что ссылка на узел больше не действительна.
	ErrStaleNode = errors.New("stale node reference")
	// ErrNoParent возвращается для корня и отсоединённых узлов.
	ErrNoParent = errors.New("node has no parent")
)
