package system

import "github.com/milk9111/duel/ecs/component"

const (
	IntentIdleMonkey                component.IntentID = "IdleMonkey"
	IntentChasedStepMonkey          component.IntentID = "TriggerChasedStepMonkey"
	IntentRunMonkey                 component.IntentID = "TriggerRunMonkey"
	IntentChasedStepAndRunMonkey    component.IntentID = "TriggerChasedStepAndRunMonkey"
	IntentPunchMonkey               component.IntentID = "TriggerPunchMonkey"
	IntentChasedStepAndPunchMonkey  component.IntentID = "TriggerChasedStepAndPunchMonkey"
	IntentRunAndPunchMonkey         component.IntentID = "TriggerRunAndPunchMonkey"
	IntentKickMonkey                component.IntentID = "TriggerKickMonkey"
	IntentChasedStepAndKickMonkey   component.IntentID = "TriggerChasedStepAndKickMonkey"
	IntentRunAndKickMonkey          component.IntentID = "TriggerRunAndKickMonkey"
	IntentDeathMonkey               component.IntentID = "TriggerDeathMonkey"
	IntentIdleSamurai               component.IntentID = "IdleSamurai"
	IntentChasedStepSamurai         component.IntentID = "TriggerChasedStepSamurai"
	IntentRunSamurai                component.IntentID = "TriggerRunSamurai"
	IntentChasedStepAndRunSamurai   component.IntentID = "TriggerChasedStepAndRunSamurai"
	IntentPunchSamurai              component.IntentID = "TriggerPunchSamurai"
	IntentChasedStepAndPunchSamurai component.IntentID = "TriggerChasedStepAndPunchSamurai"
	IntentRunAndPunchSamurai        component.IntentID = "TriggerRunAndPunchSamurai"
	IntentKickSamurai               component.IntentID = "TriggerKickSamurai"
	IntentChasedStepAndKickSamurai  component.IntentID = "TriggerChasedStepAndKickSamurai"
	IntentRunAndKickSamurai         component.IntentID = "TriggerRunAndKickSamurai"
	IntentDeathSamurai              component.IntentID = "TriggerDeathSamurai"
)

type intentRow [component.MovementContextCount]component.IntentID

type variantIntents [component.ActionCount]intentRow

// Indexed [action][context]. Only Punch, Kick and Run vary by context.
var monkeyIntents = variantIntents{
	component.ActionIdle:  {IntentIdleMonkey, IntentIdleMonkey, IntentIdleMonkey},
	component.ActionWalk:  {IntentChasedStepMonkey, IntentChasedStepMonkey, IntentChasedStepMonkey},
	component.ActionRun:   {IntentRunMonkey, IntentChasedStepAndRunMonkey, IntentRunMonkey},
	component.ActionPunch: {IntentPunchMonkey, IntentChasedStepAndPunchMonkey, IntentRunAndPunchMonkey},
	component.ActionKick:  {IntentKickMonkey, IntentChasedStepAndKickMonkey, IntentRunAndKickMonkey},
	component.ActionDeath: {IntentDeathMonkey, IntentDeathMonkey, IntentDeathMonkey},
}

var samuraiIntents = variantIntents{
	component.ActionIdle:  {IntentIdleSamurai, IntentIdleSamurai, IntentIdleSamurai},
	component.ActionWalk:  {IntentChasedStepSamurai, IntentChasedStepSamurai, IntentChasedStepSamurai},
	component.ActionRun:   {IntentRunSamurai, IntentChasedStepAndRunSamurai, IntentRunSamurai},
	component.ActionPunch: {IntentPunchSamurai, IntentChasedStepAndPunchSamurai, IntentRunAndPunchSamurai},
	component.ActionKick:  {IntentKickSamurai, IntentChasedStepAndKickSamurai, IntentRunAndKickSamurai},
	component.ActionDeath: {IntentDeathSamurai, IntentDeathSamurai, IntentDeathSamurai},
}

// IntentFor maps an action, movement context and variant to the animation
// intent to play. It is total: an unassigned variant plays as monkey and out
// of range actions or contexts fall back to the variant's idle intent.
func IntentFor(action component.Action, context component.MovementContext, variant component.Variant) component.IntentID {
	table := &monkeyIntents
	if variant == component.VariantSamurai {
		table = &samuraiIntents
	}
	if action < 0 || int(action) >= component.ActionCount {
		return table[component.ActionIdle][component.ContextNone]
	}
	if context < 0 || int(context) >= component.MovementContextCount {
		context = component.ContextNone
	}
	return table[action][context]
}
