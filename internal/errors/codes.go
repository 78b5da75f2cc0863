package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Configuration errors
	CodeInvalidPlayerCount Code = "INVALID_PLAYER_COUNT"
	CodeInvalidHandSize    Code = "INVALID_HAND_SIZE"
	CodeInvalidDeckCount   Code = "INVALID_DECK_COUNT"
	CodeInvalidTurnOrder   Code = "INVALID_TURN_ORDER"
	CodeInvalidCapacity    Code = "INVALID_CAPACITY"
	CodeInvalidConfig      Code = "INVALID_CONFIG"

	// Lookup errors
	CodeUnknownPlayer        Code = "UNKNOWN_PLAYER"
	CodeNoTable              Code = "NO_TABLE"
	CodeUnknownArea          Code = "UNKNOWN_AREA"
	CodeUnknownDeck          Code = "UNKNOWN_DECK"
	CodeUnknownResource      Code = "UNKNOWN_RESOURCE"
	CodeCardNotFound         Code = "CARD_NOT_FOUND"
	CodePhaseIndexOutOfRange Code = "PHASE_INDEX_OUT_OF_RANGE"

	// Capability errors
	CodeMissingCapability Code = "MISSING_CAPABILITY"

	// State errors
	CodePlayerAlreadyRegistered Code = "PLAYER_ALREADY_REGISTERED"
	CodePlayerLimitReached      Code = "PLAYER_LIMIT_REACHED"
	CodeTableAlreadyRegistered  Code = "TABLE_ALREADY_REGISTERED"
	CodeAreaFull                Code = "AREA_FULL"
	CodeCardAlreadyPlaced       Code = "CARD_ALREADY_PLACED"
	CodePhaseAlreadyEnded       Code = "PHASE_ALREADY_ENDED"
	CodeCascadeTooDeep          Code = "CASCADE_TOO_DEEP"
	CodeScriptFailed            Code = "SCRIPT_FAILED"
	CodeInsufficientChips       Code = "INSUFFICIENT_CHIPS"
)

// Kind maps a code to the category callers branch on.
func (c Code) Kind() Kind {
	switch c {
	case CodeInvalidPlayerCount,
		CodeInvalidHandSize,
		CodeInvalidDeckCount,
		CodeInvalidTurnOrder,
		CodeInvalidCapacity,
		CodeInvalidConfig:
		return KindConfiguration

	case CodeUnknownPlayer,
		CodeNoTable,
		CodeUnknownArea,
		CodeUnknownDeck,
		CodeUnknownResource,
		CodeCardNotFound,
		CodePhaseIndexOutOfRange:
		return KindLookup

	case CodeMissingCapability:
		return KindCapability

	case CodePlayerAlreadyRegistered,
		CodePlayerLimitReached,
		CodeTableAlreadyRegistered,
		CodeAreaFull,
		CodeCardAlreadyPlaced,
		CodePhaseAlreadyEnded,
		CodeCascadeTooDeep,
		CodeScriptFailed,
		CodeInsufficientChips:
		return KindState

	default:
		return KindUnknown
	}
}
