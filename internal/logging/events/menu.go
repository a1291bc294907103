package events

import "github.com/atomicstack/llamabar/internal/logging"

type MenuTracer struct{}

type HighlightTracer struct{}

type RouterTracer struct{}

var (
	Menu      = MenuTracer{}
	Highlight = HighlightTracer{}
	Router    = RouterTracer{}
)

func (MenuTracer) Open(session string) {
	logging.Trace("menu.open", map[string]interface{}{"session": session})
}

func (MenuTracer) Close(session string) {
	logging.Trace("menu.close", map[string]interface{}{"session": session})
}

func (MenuTracer) Build(items int, settings bool) {
	logging.Trace("menu.build", map[string]interface{}{"items": items, "settings": settings})
}

// Rebuild records which reconciliation branch a section took.
func (MenuTracer) Rebuild(section, branch string, rows int) {
	logging.Trace("menu.rebuild", map[string]interface{}{"section": section, "branch": branch, "rows": rows})
}

func (MenuTracer) Toggle(family string, collapsed bool) {
	logging.Trace("menu.family.toggle", map[string]interface{}{"family": family, "collapsed": collapsed})
}

func (MenuTracer) Activate(kind, label string) {
	logging.Trace("menu.activate", map[string]interface{}{"kind": kind, "label": label})
}

func (HighlightTracer) Move(label string) {
	logging.Trace("highlight.move", map[string]interface{}{"label": label})
}

func (HighlightTracer) Preserve(family string) {
	logging.Trace("highlight.preserve", map[string]interface{}{"family": family})
}

func (HighlightTracer) Restore(family string, found bool) {
	logging.Trace("highlight.restore", map[string]interface{}{"family": family, "found": found})
}

func (HighlightTracer) Abandon(family, reason string) {
	logging.Trace("highlight.abandon", map[string]interface{}{"family": family, "reason": reason})
}

func (RouterTracer) Attach(subscriptions int) {
	logging.Trace("router.attach", map[string]interface{}{"subscriptions": subscriptions})
}

func (RouterTracer) Detach(subscriptions int) {
	logging.Trace("router.detach", map[string]interface{}{"subscriptions": subscriptions})
}

func (RouterTracer) Dispatch(kind, scope string) {
	logging.Trace("router.dispatch", map[string]interface{}{"kind": kind, "scope": scope})
}
