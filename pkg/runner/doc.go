/*
Package runner implements a reference training driver for the dispatch engine.

It owns a RunState and walks the lifecycle nesting order

	mode start
	    epoch start
	        loader start
	            batch start
	            batch handler
	            batch end
	        loader end
	    epoch end
	mode end

firing the matching hook on an observer (usually an *observer.Dispatcher) at
each transition. Cancellation is honoured between hook invocations only.

# Usage

	r := runner.New(dispatcher, model,
		runner.WithLogger(logger),
	)

	state, err := r.Train(ctx, 10, trainLoader, validLoader)
	if err != nil {
		log.Fatal(err)
	}
*/
package runner
