package scene

import "errors"

var (
	ErrSceneExists        = errors.New("scene: name already registered")
	ErrSceneNotFound      = errors.New("scene: not found")
	ErrAlreadyLoaded      = errors.New("scene: description already loaded")
	ErrInvalidDescription = errors.New("scene: invalid description")
)
