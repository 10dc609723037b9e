package ui

// menuLines is the static help listing shown in place of the output pane
// when the menu view is toggled.
func menuLines() []string {
	return []string{
		"Available Commands:",
		"- getinfo: Get node information",
		"- listfunds: List available funds",
		"- invoice <amt> <label> <desc>: Create invoice",
		"- listinvoices: List all invoices",
		"- pay: Pay an invoice (opens input dialog)",
		"- fetchinvoice: Fetch invoice for an offer (opens input dialog)",
		"- offer <amount> <description>: Create an offer",
		"- listpeers: List all peers",
		"- listchannels: List all channels",
		"- connect <id> [host] [port]: Connect to peer",
		"- disconnect <id>: Disconnect from peer",
		"- openchannel <peer_id> <amount> [feerate]: Open a channel",
		"- closechannel <channel_id> [force]: Close a channel",
		"- help: Show this menu",
		"- quit: Exit the CLI",
		"=== Bitcoin Commands ===",
		"- addpsbtoutput <satoshi> [initialpsbt] [locktime] [destination]: Create or modify PSBT with output",
		"- feerates <style>: Get feerate estimates",
		"- fundpsbt <satoshi> <feerate> <startweight> [minconf] [reserve] [locktime]: Create PSBT",
		"- newaddr [addresstype]: Get a new address",
		"- parsefeerate <feerate>: Get current feerate",
		"- reserveinputs <psbt> [exclusive] [reserve]: Reserve utxos",
		"- sendpsbt <psbt> [reserve]: Finalize and send PSBT",
		"- setpsbtversion <psbt> <version>: Convert PSBT version",
		"- signpsbt <psbt> [signonly]: Sign PSBT inputs",
		"- unreserveinputs <psbt> [reserve]: Unreserve utxos",
		"- utxopsbt <satoshi> <feerate> <startweight> <utxos>: Create PSBT using utxos",
		"=== Payment Commands ===",
		"- createinvoice <invstring> <label> <preimage>: Sign and create invoice",
		"- createoffer <bolt12> [label] [single_use]: Create and sign an offer",
		"- decodepay <bolt11> [description]: Decode payment",
		"- delinvoice <label> <status> [desconly]: Delete unpaid invoice",
		"- delpay <payment_hash> <status> [partid] [groupid]: Delete payment",
		"- disableoffer <offer_id>: Disable offer",
		"- listoffers [offer_id] [active_only]: List offers",
		"- listsendpays [bolt11] [payment_hash] [status]: List sent payments",
		"- listtransactions: List transactions",
		"- preapproveinvoice <bolt11>: Preapprove an invoice",
		"- signinvoice <invstring>: Sign invoice",
		"- withdraw <destination> <satoshi> [feerate] [minconf] [utxos]: Send funds to address",
	}
}
