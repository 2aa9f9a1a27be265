package health

import "context"

// Ping is an indicator that is UP whenever the process can serve requests.
type Ping struct{}

// Name implements Indicator.
func (Ping) Name() string { return "ping" }

// Health implements Indicator.
func (Ping) Health(context.Context) Component {
	return Component{Status: StatusUp}
}
