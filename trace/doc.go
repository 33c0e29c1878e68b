// Package trace records every native call as one line of a replayable
// transcript.
//
// A transcript interleaves command lines with marker lines:
//
//	LOAD_ENTITY "howso" "model.amlg" false false false false "" ""
//	# RESULT >true,"",""
//	# TIME EXECUTION START 2026-03-01 10:22:05,114
//	EXECUTE_ENTITY_JSON "howso" "react" {"action":"version"}
//	# TIME EXECUTION STOP 2026-03-01 10:22:05,241
//	# RESULT >{"payload":"5.2.1"}
//	EXIT
//
// Command lines are exactly what an engine command-line process accepts on
// stdin, so piping a filtered transcript back into one replays the session.
// Marker lines start with "#" and carry results, notes, and timestamps;
// Commands strips them back out.
//
// Opening a recorder rotates the target file to <name>.1, <name>.2, and so
// on instead of overwriting, unless append mode keeps writing to the
// existing file. Recording is best-effort: write failures are logged and
// swallowed so a broken trace never fails the call it was describing.
package trace
