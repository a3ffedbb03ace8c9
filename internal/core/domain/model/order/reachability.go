package order

import "fmt"

// reachable holds every status reachable from Pending over the union of the
// transition table and the prescription review cascade.
var reachable = computeReachable()

func computeReachable() map[Status]struct{} {
	edges := make(map[Status][]Status)
	for from, next := range transitions {
		for to := range next {
			edges[from] = append(edges[from], to)
		}
	}
	for _, from := range Statuses() {
		for _, decision := range PrescriptionStatuses() {
			edges[from] = append(edges[from], cascadeStatus(from, decision))
		}
	}

	seen := map[Status]struct{}{Pending: {}}
	queue := []Status{Pending}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range edges[current] {
			if _, ok := seen[next]; ok {
				continue
			}
			seen[next] = struct{}{}
			queue = append(queue, next)
		}
	}
	return seen
}

// IsReachable reports whether s can be reached from Pending by either
// status-changing authority.
func IsReachable(s Status) bool {
	_, ok := reachable[s]
	return ok
}

func ensureReachable(s Status) error {
	if !IsReachable(s) {
		return fmt.Errorf("order status %s is not reachable from %s", s, Pending)
	}
	return nil
}
