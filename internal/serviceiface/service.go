package serviceiface

// Service is the lifecycle contract every portal service implements.
type Service interface {
	Name() string
	Start() error
	Stop() error
}
