package rexel

// ParallelMatcher is the non-backtracking executor spec.md §4.H describes:
// "two parallel threaded arrays... link[i] gives the next active state in a
// singly-linked chain starting at link[0]; len[i] is the longest match
// length that has reached state i". It consumes one code point (plus its
// assertion bitmask) per Step call and can run forever on a stream without
// buffering input, at the cost of not tracking captures — that needs
// BacktrackMatcher.
//
// A zero-width assertion reached by consuming a rune depends on the
// boundary *after* that rune, which this streaming API only learns when the
// next Step (or Finish) call supplies it. Such assertions are therefore not
// resolved immediately: they are recorded in pendingAssert and retried,
// with the now-known flags, at the very start of the following call — the
// same "retry once the boundary is known" treatment a caller building
// flags from a real look-ahead buffer (as pkg/document's rune buffer
// allows) would otherwise make unnecessary.
type ParallelMatcher struct {
	prog     *Program
	anchored bool
	started  bool

	cur, next     *parallelList
	pendingAssert []pendingThread

	matched bool
	bestLen int
}

type pendingThread struct {
	pc     int
	length int
}

// parallelList is the flat linked-chain structure backing the matcher's
// live-thread set: link[0] is the chain head, link[i] for i>0 is either the
// next chained position, 0 to mean "last in chain", or noLink to mean "not
// scheduled this step". Position pc occupies slot pc+1, leaving slot 0 free
// to double as both head pointer and "end of chain" sentinel, since no real
// instruction is ever addressed by pc == -1.
type parallelList struct {
	visited []bool
	link    []int
	len     []int
	tail    int
}

const noLink = -1

func newParallelList(progLen int) *parallelList {
	l := &parallelList{
		visited: make([]bool, progLen),
		link:    make([]int, progLen+1),
		len:     make([]int, progLen+1),
	}
	l.reset()
	return l
}

func (l *parallelList) reset() {
	for i := range l.visited {
		l.visited[i] = false
	}
	for i := range l.link {
		l.link[i] = noLink
	}
	l.link[0] = 0
	l.tail = 0
}

// StepResult reports what a single Step/Finish call observed, the three
// outcomes spec.md §4.H's matcher state paragraph names.
type StepResult struct {
	Matched   bool
	Length    int
	MayExtend bool
	DeadEnd   bool
}

// NewParallelMatcher prepares a streaming matcher over prog, honoring
// prog.Anchored: anchored means the only attempt considered starts at the
// first rune fed to Step; unanchored reseeds a fresh start thread, at
// lowest priority, on every step, so a match can begin anywhere in the
// stream.
func NewParallelMatcher(prog *Program) *ParallelMatcher {
	return newParallelMatcher(prog, prog.Anchored)
}

func newParallelMatcher(prog *Program, anchored bool) *ParallelMatcher {
	progLen := len(prog.Prog) - 1
	return &ParallelMatcher{
		prog:     prog,
		anchored: anchored,
		cur:      newParallelList(progLen),
		next:     newParallelList(progLen),
		bestLen:  -1,
	}
}

// addThread fully expands pc's epsilon closure into list, resolving
// opAssert immediately against flags. Used to seed a fresh start thread and
// to retry a previously deferred assertion, both cases where flags
// correctly describes the boundary the thread is sitting at.
func addThread(list *parallelList, prog *Program, pc, length int, flags assertFlag) {
	if pc < 0 || pc >= len(list.visited) {
		return
	}
	if list.visited[pc] {
		return
	}
	list.visited[pc] = true

	op, operand := unpack(prog.Prog[1+pc])
	switch op {
	case opForkGreedy:
		addThread(list, prog, pc+1, length, flags)
		addThread(list, prog, operand, length, flags)
	case opForkLazy:
		addThread(list, prog, operand, length, flags)
		addThread(list, prog, pc+1, length, flags)
	case opJmp:
		addThread(list, prog, operand, length, flags)
	case opCaptureStart, opCaptureEnd, opCaseFold:
		addThread(list, prog, pc+1, length, flags)
	case opAssert:
		if want := assertFlag(operand); flags&want == want {
			addThread(list, prog, pc+1, length, flags)
		}
	case opBackref:
		// Unsupported here; Program.HasBackref tells callers to use
		// BacktrackMatcher instead.
	case opClass, opMatch:
		idx := pc + 1
		list.link[list.tail] = idx
		list.link[idx] = 0
		list.len[idx] = length
		list.tail = idx
	}
}

// addThreadDeferred is addThread's counterpart for threads produced by
// consuming the in-flight rune: fork/jmp/capture/case-fold still resolve
// eagerly, and opClass/opMatch still land in list immediately (so a match
// completing with no trailing assertion is reported the same step it
// completes in), but an opAssert cannot be judged yet — it is appended to
// *deferred for a future addThread retry instead of being resolved (or
// marked visited; a node that has not been resolved must remain available
// to retry).
func addThreadDeferred(list *parallelList, prog *Program, pc, length int, deferred *[]pendingThread) {
	if pc < 0 || pc >= len(list.visited) {
		return
	}
	op, operand := unpack(prog.Prog[1+pc])
	if op == opAssert {
		*deferred = append(*deferred, pendingThread{pc: pc, length: length})
		return
	}
	if list.visited[pc] {
		return
	}
	list.visited[pc] = true

	switch op {
	case opForkGreedy:
		addThreadDeferred(list, prog, pc+1, length, deferred)
		addThreadDeferred(list, prog, operand, length, deferred)
	case opForkLazy:
		addThreadDeferred(list, prog, operand, length, deferred)
		addThreadDeferred(list, prog, pc+1, length, deferred)
	case opJmp:
		addThreadDeferred(list, prog, operand, length, deferred)
	case opCaptureStart, opCaptureEnd, opCaseFold:
		addThreadDeferred(list, prog, pc+1, length, deferred)
	case opBackref:
	case opClass, opMatch:
		idx := pc + 1
		list.link[list.tail] = idx
		list.link[idx] = 0
		list.len[idx] = length
		list.tail = idx
	}
}

// prepare finishes building m.cur for this call: it retries whatever
// assertions last call's consumption deferred, now that flags describes
// the boundary they were waiting on, and seeds a fresh start thread if
// this is the first call or the pattern is unanchored.
func (m *ParallelMatcher) prepare(flags assertFlag) {
	pending := m.pendingAssert
	m.pendingAssert = m.pendingAssert[:0]
	for _, p := range pending {
		addThread(m.cur, m.prog, p.pc, p.length, flags)
	}
	if !m.started || !m.anchored {
		addThread(m.cur, m.prog, 0, 0, flags)
	}
	m.started = true
}

func (m *ParallelMatcher) record(matchLen int) {
	if matchLen != -1 && matchLen > m.bestLen {
		m.bestLen = matchLen
		m.matched = true
	}
}

func scanMatch(list *parallelList, prog *Program) int {
	best := -1
	for i := list.link[0]; i != 0; i = list.link[i] {
		pc := i - 1
		if op, _ := unpack(prog.Prog[1+pc]); op == opMatch {
			if list.len[i] > best {
				best = list.len[i]
			}
		}
	}
	return best
}

// Step consumes r, with flags describing the boundary at r's position, and
// reports the match state after doing so.
func (m *ParallelMatcher) Step(r rune, flags assertFlag) StepResult {
	m.prepare(flags)
	matchLen := scanMatch(m.cur, m.prog)

	m.next.reset()
	for i := m.cur.link[0]; i != 0; i = m.cur.link[i] {
		pc := i - 1
		op, operand := unpack(m.prog.Prog[1+pc])
		if op != opClass {
			continue
		}
		set := m.prog.classAt(operand)
		if set.contains(r) {
			addThreadDeferred(m.next, m.prog, pc+1, m.cur.len[i]+1, &m.pendingAssert)
		}
	}
	if nlen := scanMatch(m.next, m.prog); nlen > matchLen {
		matchLen = nlen
	}
	m.record(matchLen)

	nextHasClass := false
	for i := m.next.link[0]; i != 0; i = m.next.link[i] {
		pc := i - 1
		if op, _ := unpack(m.prog.Prog[1+pc]); op == opClass {
			nextHasClass = true
			break
		}
	}

	m.cur, m.next = m.next, m.cur

	return StepResult{
		Matched:   m.matched,
		Length:    m.bestLen,
		MayExtend: nextHasClass || len(m.pendingAssert) > 0 || !m.anchored,
		DeadEnd:   !nextHasClass && len(m.pendingAssert) == 0 && m.anchored,
	}
}

// Finish resolves any trailing zero-width assertions (an end-anchored
// pattern's "$" or "\Z") against flags describing the true end of input, with
// no further rune to consume.
func (m *ParallelMatcher) Finish(flags assertFlag) StepResult {
	m.prepare(flags)
	matchLen := scanMatch(m.cur, m.prog)
	m.record(matchLen)

	return StepResult{Matched: m.matched, Length: m.bestLen, MayExtend: false, DeadEnd: !m.matched}
}
