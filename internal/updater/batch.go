package updater

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// CheckResult reports the divergence outcome for one repository.
type CheckResult struct {
	Handle         *RepositoryHandle
	UpdatesPending bool
	Scheduled      bool
}

// UpdateResult reports the update outcome for one repository.
type UpdateResult struct {
	Handle    *RepositoryHandle
	Updated   bool
	Scheduled bool
}

// CheckAll runs HasPendingUpdates for every handle, one worker per
// repository, bounded by the configured concurrency limit. Results are
// returned in handle order. Cancelling the context stops scheduling new
// repositories; operations already in flight detach from the batch context
// and run to their own completion or network timeout.
func (service *Service) CheckAll(executionContext context.Context, handles []*RepositoryHandle) []CheckResult {
	results := make([]CheckResult, len(handles))

	var group errgroup.Group
	group.SetLimit(service.maximumConcurrent)

	for handleIndex, handle := range handles {
		results[handleIndex] = CheckResult{Handle: handle}

		if executionContext != nil && executionContext.Err() != nil {
			continue
		}

		resultIndex := handleIndex
		scheduledHandle := handle
		group.Go(func() error {
			operationContext := detachedContext(executionContext)
			results[resultIndex] = CheckResult{
				Handle:         scheduledHandle,
				UpdatesPending: service.HasPendingUpdates(operationContext, scheduledHandle),
				Scheduled:      true,
			}
			return nil
		})
	}

	_ = group.Wait()
	return results
}

// UpdateAll runs Update for every handle under the same scheduling contract
// as CheckAll.
func (service *Service) UpdateAll(executionContext context.Context, handles []*RepositoryHandle) []UpdateResult {
	results := make([]UpdateResult, len(handles))

	var group errgroup.Group
	group.SetLimit(service.maximumConcurrent)

	for handleIndex, handle := range handles {
		results[handleIndex] = UpdateResult{Handle: handle}

		if executionContext != nil && executionContext.Err() != nil {
			continue
		}

		resultIndex := handleIndex
		scheduledHandle := handle
		group.Go(func() error {
			operationContext := detachedContext(executionContext)
			results[resultIndex] = UpdateResult{
				Handle:    scheduledHandle,
				Updated:   service.Update(operationContext, scheduledHandle),
				Scheduled: true,
			}
			return nil
		})
	}

	_ = group.Wait()
	return results
}

// detachedContext severs batch cancellation from an in-flight repository
// operation while preserving context values; the per-operation network
// timeout still applies.
func detachedContext(executionContext context.Context) context.Context {
	if executionContext == nil {
		return context.Background()
	}
	return context.WithoutCancel(executionContext)
}
