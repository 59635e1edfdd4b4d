package log

import (
	"errors"
	"io"
	"sort"
	"time"
)

// OpStats aggregates the outcome of one operation type.
type OpStats struct {
	Requests  int
	Responses int
	Errors    int
	Total     time.Duration
	Max       time.Duration
}

// Mean returns the mean round trip of completed requests.
func (s OpStats) Mean() time.Duration {
	n := s.Responses + s.Errors
	if n == 0 {
		return 0
	}
	return s.Total / time.Duration(n)
}

// Summary aggregates a trace.
type Summary struct {
	Events      int
	Connections map[string]int // connection ID -> event count
	Hosts       map[string]int // host -> event count
	Ops         map[Operation]*OpStats
	First, Last time.Time
}

// Summarize consumes r until io.EOF.
func Summarize(r *Reader) (*Summary, error) {
	s := &Summary{
		Connections: make(map[string]int),
		Hosts:       make(map[string]int),
		Ops:         make(map[Operation]*OpStats),
	}
	for {
		event, err := r.Next()
		if errors.Is(err, io.EOF) {
			return s, nil
		}
		if err != nil {
			return s, err
		}
		s.add(event)
	}
}

func (s *Summary) add(e Event) {
	s.Events++
	s.Connections[e.ConnectionID]++
	if e.Host != "" {
		s.Hosts[e.Host]++
	}
	if s.First.IsZero() || e.Timestamp.Before(s.First) {
		s.First = e.Timestamp
	}
	if e.Timestamp.After(s.Last) {
		s.Last = e.Timestamp
	}

	op, ok := e.Operation()
	if !ok {
		return
	}
	st := s.Ops[op]
	if st == nil {
		st = &OpStats{}
		s.Ops[op] = st
	}

	var rtt time.Duration
	switch {
	case e.Request != nil:
		st.Requests++
		return
	case e.Response != nil:
		st.Responses++
		rtt = e.Response.RoundTrip
	case e.Error != nil:
		st.Errors++
		rtt = e.Error.RoundTrip
	}
	st.Total += rtt
	st.Max = max(st.Max, rtt)
}

// Operations returns the operations present in the summary in protocol order.
func (s *Summary) Operations() []Operation {
	ops := make([]Operation, 0, len(s.Ops))
	for op := range s.Ops {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i] < ops[j] })
	return ops
}
