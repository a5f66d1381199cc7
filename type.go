package event

import (
	"fmt"
	"strings"
)

// Type identifies the kind of an Event. The set of types is closed; new
// types are appended immediately before TypeAll.
type Type int

const (
	TypeCustom Type = iota
	TypeClone
	TypeChannelCreate
	TypeChannelDestroy
	TypeChannelState
	TypeChannelCallState
	TypeChannelAnswer
	TypeChannelHangup
	TypeChannelHangupComplete
	TypeChannelExecute
	TypeChannelExecuteComplete
	TypeChannelHold
	TypeChannelUnhold
	TypeChannelBridge
	TypeChannelUnbridge
	TypeChannelProgress
	TypeChannelProgressMedia
	TypeChannelOutgoing
	TypeChannelPark
	TypeChannelUnpark
	TypeChannelApplication
	TypeChannelOriginate
	TypeChannelUUID
	TypeAPI
	TypeLog
	TypeInboundChan
	TypeOutboundChan
	TypeStartup
	TypeShutdown
	TypePublish
	TypeUnpublish
	TypeTalk
	TypeNoTalk
	TypeSessionCrash
	TypeModuleLoad
	TypeModuleUnload
	TypeDTMF
	TypeMessage
	TypePresenceIn
	TypeNotifyIn
	TypePresenceOut
	TypePresenceProbe
	TypeMessageWaiting
	TypeMessageQuery
	TypeRoster
	TypeCodec
	TypeBackgroundJob
	TypeDetectedSpeech
	TypeDetectedTone
	TypePrivateCommand
	TypeHeartbeat
	TypeTrap
	TypeAddSchedule
	TypeDelSchedule
	TypeExeSchedule
	TypeReSchedule
	TypeReloadXML
	TypeNotify
	TypePhoneFeature
	TypePhoneFeatureSubscribe
	TypeSendMessage
	TypeRecvMessage
	TypeRequestParams
	TypeChannelData
	TypeGeneral
	TypeCommand
	TypeSessionHeartbeat
	TypeClientDisconnected
	TypeServerDisconnected
	TypeSendInfo
	TypeRecvInfo
	TypeRecvRTCPMessage
	TypeSendRTCPMessage
	TypeCallSecure
	TypeNAT
	TypeRecordStart
	TypeRecordStop
	TypePlaybackStart
	TypePlaybackStop
	TypeCallUpdate
	TypeFailure
	TypeSocketData
	TypeMediaBugStart
	TypeMediaBugStop
	TypeConferenceDataQuery
	TypeConferenceData
	TypeCallSetupReq
	TypeCallSetupResult
	TypeCallDetail
	TypeDeviceState
	TypeText
	TypeShutdownRequested
	// TypeAll matches every type in subscriptions. It must stay last.
	TypeAll
)

// typeNames is keyed by Type so a missing entry leaves an empty string the
// registry test catches, and the assertion below fails the build if the
// table and the enumeration differ in length.
var typeNames = [...]string{
	TypeCustom:                 "CUSTOM",
	TypeClone:                  "CLONE",
	TypeChannelCreate:          "CHANNEL_CREATE",
	TypeChannelDestroy:         "CHANNEL_DESTROY",
	TypeChannelState:           "CHANNEL_STATE",
	TypeChannelCallState:       "CHANNEL_CALLSTATE",
	TypeChannelAnswer:          "CHANNEL_ANSWER",
	TypeChannelHangup:          "CHANNEL_HANGUP",
	TypeChannelHangupComplete:  "CHANNEL_HANGUP_COMPLETE",
	TypeChannelExecute:         "CHANNEL_EXECUTE",
	TypeChannelExecuteComplete: "CHANNEL_EXECUTE_COMPLETE",
	TypeChannelHold:            "CHANNEL_HOLD",
	TypeChannelUnhold:          "CHANNEL_UNHOLD",
	TypeChannelBridge:          "CHANNEL_BRIDGE",
	TypeChannelUnbridge:        "CHANNEL_UNBRIDGE",
	TypeChannelProgress:        "CHANNEL_PROGRESS",
	TypeChannelProgressMedia:   "CHANNEL_PROGRESS_MEDIA",
	TypeChannelOutgoing:        "CHANNEL_OUTGOING",
	TypeChannelPark:            "CHANNEL_PARK",
	TypeChannelUnpark:          "CHANNEL_UNPARK",
	TypeChannelApplication:     "CHANNEL_APPLICATION",
	TypeChannelOriginate:       "CHANNEL_ORIGINATE",
	TypeChannelUUID:            "CHANNEL_UUID",
	TypeAPI:                    "API",
	TypeLog:                    "LOG",
	TypeInboundChan:            "INBOUND_CHAN",
	TypeOutboundChan:           "OUTBOUND_CHAN",
	TypeStartup:                "STARTUP",
	TypeShutdown:               "SHUTDOWN",
	TypePublish:                "PUBLISH",
	TypeUnpublish:              "UNPUBLISH",
	TypeTalk:                   "TALK",
	TypeNoTalk:                 "NOTALK",
	TypeSessionCrash:           "SESSION_CRASH",
	TypeModuleLoad:             "MODULE_LOAD",
	TypeModuleUnload:           "MODULE_UNLOAD",
	TypeDTMF:                   "DTMF",
	TypeMessage:                "MESSAGE",
	TypePresenceIn:             "PRESENCE_IN",
	TypeNotifyIn:               "NOTIFY_IN",
	TypePresenceOut:            "PRESENCE_OUT",
	TypePresenceProbe:          "PRESENCE_PROBE",
	TypeMessageWaiting:         "MESSAGE_WAITING",
	TypeMessageQuery:           "MESSAGE_QUERY",
	TypeRoster:                 "ROSTER",
	TypeCodec:                  "CODEC",
	TypeBackgroundJob:          "BACKGROUND_JOB",
	TypeDetectedSpeech:         "DETECTED_SPEECH",
	TypeDetectedTone:           "DETECTED_TONE",
	TypePrivateCommand:         "PRIVATE_COMMAND",
	TypeHeartbeat:              "HEARTBEAT",
	TypeTrap:                   "TRAP",
	TypeAddSchedule:            "ADD_SCHEDULE",
	TypeDelSchedule:            "DEL_SCHEDULE",
	TypeExeSchedule:            "EXE_SCHEDULE",
	TypeReSchedule:             "RE_SCHEDULE",
	TypeReloadXML:              "RELOADXML",
	TypeNotify:                 "NOTIFY",
	TypePhoneFeature:           "PHONE_FEATURE",
	TypePhoneFeatureSubscribe:  "PHONE_FEATURE_SUBSCRIBE",
	TypeSendMessage:            "SEND_MESSAGE",
	TypeRecvMessage:            "RECV_MESSAGE",
	TypeRequestParams:          "REQUEST_PARAMS",
	TypeChannelData:            "CHANNEL_DATA",
	TypeGeneral:                "GENERAL",
	TypeCommand:                "COMMAND",
	TypeSessionHeartbeat:       "SESSION_HEARTBEAT",
	TypeClientDisconnected:     "CLIENT_DISCONNECTED",
	TypeServerDisconnected:     "SERVER_DISCONNECTED",
	TypeSendInfo:               "SEND_INFO",
	TypeRecvInfo:               "RECV_INFO",
	TypeRecvRTCPMessage:        "RECV_RTCP_MESSAGE",
	TypeSendRTCPMessage:        "SEND_RTCP_MESSAGE",
	TypeCallSecure:             "CALL_SECURE",
	TypeNAT:                    "NAT",
	TypeRecordStart:            "RECORD_START",
	TypeRecordStop:             "RECORD_STOP",
	TypePlaybackStart:          "PLAYBACK_START",
	TypePlaybackStop:           "PLAYBACK_STOP",
	TypeCallUpdate:             "CALL_UPDATE",
	TypeFailure:                "FAILURE",
	TypeSocketData:             "SOCKET_DATA",
	TypeMediaBugStart:          "MEDIA_BUG_START",
	TypeMediaBugStop:           "MEDIA_BUG_STOP",
	TypeConferenceDataQuery:    "CONFERENCE_DATA_QUERY",
	TypeConferenceData:         "CONFERENCE_DATA",
	TypeCallSetupReq:           "CALL_SETUP_REQ",
	TypeCallSetupResult:        "CALL_SETUP_RESULT",
	TypeCallDetail:             "CALL_DETAIL",
	TypeDeviceState:            "DEVICE_STATE",
	TypeText:                   "TEXT",
	TypeShutdownRequested:      "SHUTDOWN_REQUESTED",
	TypeAll:                    "ALL",
}

// Fails to compile when typeNames and the Type constants drift apart.
var _ = [1]struct{}{}[len(typeNames)-int(TypeAll)-1]

// typePrefixLen is the length of a namespace prefix such as "SWITCH_EVENT_"
// that clients may put in front of a type name.
const typePrefixLen = 13

// String returns the registry name of t.
func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("UNKNOWN(%d)", int(t))
	}
	return typeNames[t]
}

// Valid reports whether t is a member of the enumeration.
func (t Type) Valid() bool {
	return t >= 0 && t <= TypeAll
}

// Types returns every type in registry order, TypeAll included.
func Types() []Type {
	types := make([]Type, 0, len(typeNames))
	for i := range typeNames {
		types = append(types, Type(i))
	}
	return types
}

// ParseType resolves a type name case-insensitively. Names longer than the
// 13 character namespace prefix are also matched on the part after it, so
// "SWITCH_EVENT_CUSTOM" resolves to TypeCustom.
// Returns an *UnknownTypeError matching ErrNotFound otherwise.
func ParseType(name string) (Type, error) {
	for i, n := range typeNames {
		if strings.EqualFold(name, n) {
			return Type(i), nil
		}
		if len(name) > typePrefixLen && strings.EqualFold(name[typePrefixLen:], n) {
			return Type(i), nil
		}
	}
	return 0, &UnknownTypeError{Name: name}
}

// Priority is the delivery priority of an Event.
type Priority int

const (
	PriorityNormal Priority = iota
	PriorityLow
	PriorityHigh
)

// String returns the wire name of the priority.
func (p Priority) String() string {
	switch p {
	case PriorityNormal:
		return "NORMAL"
	case PriorityLow:
		return "LOW"
	case PriorityHigh:
		return "HIGH"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(p))
	}
}

// ParsePriority is the inverse of Priority.String, case-insensitive.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToUpper(s) {
	case "NORMAL":
		return PriorityNormal, nil
	case "LOW":
		return PriorityLow, nil
	case "HIGH":
		return PriorityHigh, nil
	default:
		return PriorityNormal, fmt.Errorf("%w: priority %q", ErrInvalidArgument, s)
	}
}
