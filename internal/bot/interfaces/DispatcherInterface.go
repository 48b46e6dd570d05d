package interfaces

// DispatcherInterface runs submitted tasks one at a time, in submission order.
type DispatcherInterface interface {
	Submit(task func())
	Stop()
}
