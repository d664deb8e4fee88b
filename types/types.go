// Package types defines the shared data structures for the Fabula engine:
// immutable game definitions, mutable session state, and the condition and
// effect expression types with their wire codec.
package types

// GameDefinition is the immutable, author-supplied description of a game.
// It is validated once at load time and never mutated afterwards.
type GameDefinition struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`

	Rooms []Room `json:"rooms"`

	StartingRoom string            `json:"startingRoom"`
	InitialFlags map[string]Scalar `json:"initialFlags"`

	IntroText  Text   `json:"introText"`
	WinMessage Text   `json:"winMessage"`
	Hints      []Hint `json:"hints"`

	// GlobalTriggers are re-evaluated after every effect application,
	// independent of the current room.
	GlobalTriggers []Trigger `json:"globalTriggers,omitempty"`
}

// Room declares a location. Items, NPCs, and exits are owned by the room for
// the lifetime of the definition; only taken/visited status lives in state.
type Room struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description Text      `json:"description"`
	Items       []Item    `json:"items"`
	NPCs        []NPC     `json:"npcs"`
	Exits       []Exit    `json:"exits"`
	Triggers    []Trigger `json:"triggers,omitempty"`
}

// Item declares an object the player can examine, take, or use.
type Item struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description Text   `json:"description"`
	ExamineText Text   `json:"examineText"`
	Takeable    bool   `json:"takeable"`

	Aliases []string `json:"aliases,omitempty"`

	// Location is another item or room id the item is contained in. An item
	// with a location is not directly visible in the room listing.
	Location string `json:"location,omitempty"`

	TakeWhen        []Condition `json:"takeWhen,omitempty"`
	TakeBlockedText Text        `json:"takeBlockedText,omitempty"`
	OnTake          []Effect    `json:"onTake,omitempty"`
	OnTakeText      Text        `json:"onTakeText,omitempty"`

	UseActions []UseAction `json:"useActions,omitempty"`
}

// UseAction is one rule for how an item responds to being used. Matching is
// first-eligible-wins in declared order; authors rely on that ordering.
type UseAction struct {
	// TargetID restricts the action to "use item on target". Absent means
	// the action only matches when no target was supplied.
	TargetID string `json:"targetId,omitempty"`

	// Number requires an exact numeric argument; NumberAny accepts any.
	// When both are absent the action only matches calls without a number.
	Number    *float64 `json:"number,omitempty"`
	NumberAny bool     `json:"numberAny,omitempty"`

	Requires []Condition `json:"requires,omitempty"`
	Response Text        `json:"response"`
	Effects  []Effect    `json:"effects,omitempty"`
}

// DialogueLine is one selectable NPC conversation option. Availability is
// recomputed from When every time dialogue is requested, never cached.
type DialogueLine struct {
	When       []Condition `json:"when,omitempty"`
	PlayerLine string      `json:"playerLine"`
	Response   Text        `json:"response"`
	Effects    []Effect    `json:"effects,omitempty"`
}

// NPC declares a character the player can talk to.
type NPC struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Dialogue    []DialogueLine `json:"dialogue"`
	Aliases     []string       `json:"aliases,omitempty"`
}

// Exit connects a room to another. The legacy Locked/RequiredItem pair and
// the general Requires list can both gate it; both must pass.
type Exit struct {
	TargetRoomID   string      `json:"targetRoomId"`
	Aliases        []string    `json:"aliases,omitempty"`
	Locked         bool        `json:"locked,omitempty"`
	RequiredItem   string      `json:"requiredItem,omitempty"`
	Description    string      `json:"description,omitempty"`
	Requires       []Condition `json:"requires,omitempty"`
	BlockedMessage Text        `json:"blockedMessage,omitempty"`
}

// Trigger is a condition/effect pair checked by the cascade (global) or on
// room render (per-room).
type Trigger struct {
	ID      string      `json:"id,omitempty"`
	When    []Condition `json:"when"`
	Effects []Effect    `json:"effects"`
	Message Text        `json:"message,omitempty"`
}

// Hint is one entry of the hint list; the first hint whose conditions pass
// in declared order is shown.
type Hint struct {
	ID   string      `json:"id"`
	Text Text        `json:"text"`
	When []Condition `json:"when,omitempty"`
}

// GameState is the complete mutable per-session state. It serializes to a
// flat JSON object with no reference cycles.
type GameState struct {
	CurrentRoomID string            `json:"currentRoomId"`
	InventoryIDs  []string          `json:"inventoryIds"`
	TakenItemIDs  []string          `json:"takenItemIds"`
	Flags         map[string]Scalar `json:"flags"`
	VisitedRooms  []string          `json:"visitedRooms"`
	GameOver      bool              `json:"gameOver"`
	Won           bool              `json:"won"`
	TurnCount     int               `json:"turnCount"`
	Once          []string          `json:"once"`
}
