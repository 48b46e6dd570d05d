package interfaces

import "context"

type SchedulerInterface interface {
	Init()
	Stop()
	Tick(ctx context.Context) error
}
