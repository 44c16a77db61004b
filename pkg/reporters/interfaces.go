package reporters

import "context"

// Reporter delivers a run report to a sink (file, HTTP, SQS, etc).
type Reporter interface {
	ID() string
	Type() string
	Publish(ctx context.Context, r Report) error
}

// sender is the transport behind queue and topic reporters.
type sender interface {
	Send(ctx context.Context, r Report) error
}

// queueReporter adapts a sender into a Reporter.
type queueReporter struct {
	id     string
	typ    string
	sender sender
}

func (q *queueReporter) ID() string   { return q.id }
func (q *queueReporter) Type() string { return q.typ }

func (q *queueReporter) Publish(ctx context.Context, r Report) error {
	return q.sender.Send(ctx, r)
}

// Close releases the sender's connections, if it holds any.
func (q *queueReporter) Close() error {
	if c, ok := q.sender.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
