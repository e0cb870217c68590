package components

// Body holds render-only properties of an agent.
type Body struct {
	Size float32 // uniform model scale; not read by steering
}

// Swim holds the per-agent swimming identity fixed at spawn.
type Swim struct {
	ID          uint32  // stable index, selects the agent's wander noise lane
	CruiseSpeed float32 // steady-state speed when not fleeing
}
