package pane

// notifierEntry is one (name → subscriber) link a publisher pane holds.
// valid is cleared by Unsubscribe, or by Notify when it finds the subscriber
// closed; the publisher reaps invalid
// entries lazily, the next time it iterates (spec.md §4.G "Subscribers that
// close are removed lazily").
type notifierEntry struct {
	name       string
	subscriber *Pane
	valid      bool
	visit      uint64 // last visit-token this entry was delivered to
}

// notifieeEntry is the mirror-side bookkeeping a subscriber keeps about its
// own subscriptions, so it can unsubscribe explicitly.
type notifieeEntry struct {
	name      string
	publisher *Pane
}

// Subscribe registers subscriber to receive name notifications published by
// publisher. It is the implementation behind doc:request:<name> and
// window:request:<name> (spec.md §6).
func Subscribe(publisher, subscriber *Pane, name string) {
	publisher.notifiers = append(publisher.notifiers, notifierEntry{
		name: name, subscriber: subscriber, valid: true,
	})
	subscriber.notifiees = append(subscriber.notifiees, notifieeEntry{
		name: name, publisher: publisher,
	})
}

// Unsubscribe removes a previously-registered subscription, if present.
func Unsubscribe(publisher, subscriber *Pane, name string) {
	for i := range publisher.notifiers {
		e := &publisher.notifiers[i]
		if e.name == name && e.subscriber == subscriber {
			e.valid = false
		}
	}
	for i, e := range subscriber.notifiees {
		if e.name == name && e.publisher == publisher {
			subscriber.notifiees = append(subscriber.notifiees[:i], subscriber.notifiees[i+1:]...)
			break
		}
	}
}

// sentinelFallthrough is the "fall-through" result value notification
// delivery uses to decide whether to continue to the next subscriber. It is
// the same value reserved for dispatch fall-through in pkg/dispatch
// (Efallthrough = 0); duplicated here as an untyped constant so pkg/pane has
// no dependency on pkg/dispatch.
const sentinelFallthrough = 0

// Notify publishes name on behalf of publisher, delivering ctx to every
// still-valid subscriber in registration order (spec.md §4.G). A re-entrant
// call (a handler that itself triggers another Notify on the same
// publisher/name while this one is in progress) is guarded with a visit
// token per entry so it neither repeats nor skips an entry (spec.md §9).
//
// Delivery for each subscriber walks that subscriber's own ancestry exactly
// like command dispatch: the subscriber's handler (or an ancestor's, on
// fall-through) is invoked for "Notify:"+name. A non-fall-through result is
// "consumed": it ends that subscriber's walk, no later subscriber is
// delivered to, and Notify returns that result. If every subscriber falls
// through, Notify returns fall-through.
func Notify(publisher *Pane, name string, ctx any) int {
	if publisher == nil || publisher.root == nil {
		return sentinelFallthrough
	}
	token := publisher.root.nextVisitID()
	key := "Notify:" + name

	// Snapshot length: entries appended mid-iteration (a handler
	// subscribing during delivery) are not delivered to this round.
	n := len(publisher.notifiers)
	result := sentinelFallthrough
	for i := 0; i < n && i < len(publisher.notifiers); i++ {
		e := &publisher.notifiers[i]
		if e.name != name || !e.valid {
			continue
		}
		if e.subscriber.closed {
			e.valid = false
			continue
		}
		if e.visit == token {
			continue // already delivered this round (re-entrant publish)
		}
		e.visit = token

		res := Walk(e.subscriber, key, ctx, sentinelFallthrough)
		if res != sentinelFallthrough {
			result = res
			break // "consumed": later subscribers are not delivered to
		}
	}
	publisher.reapNotifiers()
	return result
}

// reapNotifiers drops invalidated notifier entries. Called at the end of
// every Notify so the publisher's slice does not grow without bound across
// a long-lived pane's lifetime.
func (p *Pane) reapNotifiers() {
	out := p.notifiers[:0]
	for _, e := range p.notifiers {
		if e.valid {
			out = append(out, e)
		}
	}
	p.notifiers = out
}
