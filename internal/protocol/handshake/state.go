package handshake

// State is one phase of a connection. Phases are named from the server's
// perspective; both roles pass through every state in order.
type State uint8

const (
	StateInit State = iota
	StateWaitHello
	StateSentHello
	StateSentCert
	StateSentCertRequest
	StateWaitPeerCert
	StateValidatingCert
	StateSentChallenge
	StateWaitChallengeResponse
	StateWaitPremaster
	StateKeysDerived
	StateSentFinished
	StateWaitPeerFinished
	StateVerified
	StateDataTransfer
	StateClosed

	// StateFail is terminal and reachable from every other state.
	StateFail State = 0xff
)

var stateNames = map[State]string{
	StateInit:                  "INIT",
	StateWaitHello:             "WAIT_HELLO",
	StateSentHello:             "SENT_HELLO",
	StateSentCert:              "SENT_CERT",
	StateSentCertRequest:       "SENT_CERT_REQUEST",
	StateWaitPeerCert:          "WAIT_PEER_CERT",
	StateValidatingCert:        "VALIDATING_CERT",
	StateSentChallenge:         "SENT_CHALLENGE",
	StateWaitChallengeResponse: "WAIT_CHALLENGE_RESPONSE",
	StateWaitPremaster:         "WAIT_PREMASTER",
	StateKeysDerived:           "KEYS_DERIVED",
	StateSentFinished:          "SENT_FINISHED",
	StateWaitPeerFinished:      "WAIT_PEER_FINISHED",
	StateVerified:              "VERIFIED",
	StateDataTransfer:          "DATA_TRANSFER",
	StateClosed:                "CLOSED",
	StateFail:                  "FAIL",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return "UNKNOWN"
}

// Role distinguishes the two endpoints of a connection.
type Role uint8

const (
	RoleServer Role = iota + 1
	RoleClient
)

// label is the role's wire name. Both labels have the same length, which the
// Finished computation depends on.
func (r Role) label() string {
	if r == RoleServer {
		return "SERVER"
	}
	return "CLIENT"
}

func (r Role) peer() Role {
	if r == RoleServer {
		return RoleClient
	}
	return RoleServer
}

func (r Role) String() string {
	if r == RoleServer {
		return "server"
	}
	return "client"
}
