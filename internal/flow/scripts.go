package flow

import (
	"embed"
	"strings"
)

//go:embed templates/*.cdc
var templates embed.FS

// Contract address placeholders used by the Cadence sources below.
const (
	phLeagueFactory = "0xLEAGUEFACTORY"
	phStaking       = "0xSTAKINGMANAGER"
	phSettlement    = "0xSETTLEMENT"
	phFlowToken     = "0xFLOWTOKEN"
	phFungibleToken = "0xFUNGIBLETOKEN"
)

const scriptGetLeagues = `
import LeagueFactory from 0xLEAGUEFACTORY

access(all) fun main(): [AnyStruct] {
    let leagues: [AnyStruct] = []
    let leagueIds = LeagueFactory.getLeagueIds()

    for leagueId in leagueIds {
        if let league = LeagueFactory.getLeagueDetails(leagueId: leagueId) {
            leagues.append(league)
        }
    }

    return leagues
}
`

const scriptGetLeagueDetails = `
import LeagueFactory from 0xLEAGUEFACTORY

access(all) fun main(leagueId: UInt64): AnyStruct? {
    return LeagueFactory.getLeagueDetails(leagueId: leagueId)
}
`

const scriptGetLeagueParticipants = `
import LeagueFactory from 0xLEAGUEFACTORY

access(all) fun main(leagueId: UInt64): [Address] {
    return LeagueFactory.getLeagueParticipants(leagueId: leagueId)
}
`

const scriptGetUserStakes = `
import StakingManager from 0xSTAKINGMANAGER

access(all) fun main(address: Address): [AnyStruct] {
    return StakingManager.getUserStakes(address: address)
}
`

const scriptGetLeagueTotalStake = `
import StakingManager from 0xSTAKINGMANAGER

access(all) fun main(leagueId: UInt64): UFix64 {
    return StakingManager.getLeagueTotalStake(leagueId: leagueId)
}
`

const scriptHasStake = `
import StakingManager from 0xSTAKINGMANAGER

access(all) fun main(leagueId: UInt64, address: Address): Bool {
    return StakingManager.hasStake(leagueId: leagueId, address: address)
}
`

const scriptAccountBalance = `
import FungibleToken from 0xFUNGIBLETOKEN
import FlowToken from 0xFLOWTOKEN

access(all) fun main(address: Address): UFix64 {
    let vaultRef = getAccount(address)
        .capabilities.borrow<&{FungibleToken.Balance}>(/public/flowTokenBalance)

    return vaultRef?.balance ?? 0.0
}
`

const scriptSettlementStatus = `
import Settlement from 0xSETTLEMENT

access(all) fun main(leagueId: UInt64): String {
    return Settlement.getSettlementStatus(leagueId: leagueId)
}
`

const scriptLeaguesNeedingSettlement = `
import LeagueFactory from 0xLEAGUEFACTORY

access(all) fun main(): [UInt64] {
    let factory = getAccount(0xLEAGUEFACTORY)
        .capabilities.borrow<&LeagueFactory.Factory>(LeagueFactory.FactoryPublicPath)
        ?? panic("Could not borrow factory reference")

    let allLeagues = factory.getAllLeagues()
    let needsSettlement: [UInt64] = []
    let currentTime = getCurrentBlock().timestamp

    for leagueId in allLeagues.keys {
        let league = allLeagues[leagueId]!
        if league.endTime <= currentTime && league.status != "Completed" {
            needsSettlement.append(leagueId)
        }
    }

    return needsSettlement
}
`

// Addresses are the deployed contract accounts the scripts import from.
type Addresses struct {
	LeagueFactory string
	Staking       string
	Settlement    string
	FlowToken     string
	FungibleToken string
}

func withPrefix(addr string) string {
	return "0x" + strings.TrimPrefix(strings.ToLower(addr), "0x")
}

func (a Addresses) render(source string) string {
	return strings.NewReplacer(
		phLeagueFactory, withPrefix(a.LeagueFactory),
		phStaking, withPrefix(a.Staking),
		phSettlement, withPrefix(a.Settlement),
		phFlowToken, withPrefix(a.FlowToken),
		phFungibleToken, withPrefix(a.FungibleToken),
	).Replace(source)
}

func defaultSettleTransaction() string {
	b, err := templates.ReadFile("templates/SettleLeague.cdc")
	if err != nil {
		panic(err)
	}
	return string(b)
}
