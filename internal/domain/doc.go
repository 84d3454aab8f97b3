// Package domain models the flood-emergency advice an action server composes
// for a conversational agent.
//
// # Datasets
//
// Two static JSON datasets drive every response. They are read-only inputs
// owned by whoever curates the verified data; this package never mutates them.
//
// Facility directory (array of objects):
//
//	[{"type": "hospital", "name": "Charité", "address": "Charitéplatz 1", "city": "Berlin"}, ...]
//
//	type is "hospital" or "shelter", compared after trimming and lowercasing.
//
// Flood advice (object):
//
//	{
//	  "severity":           {"low": [...], "medium": [...], "high": [...]},
//	  "water_level_advice": {"ankle": [...], "knee": [...], "waist": [...], "above": [...]},
//	  "injuries_yes": [...], "injuries_no": [...],
//	  "trapped": [...], "precautions": [...]
//	}
//
//	Missing keys behave as empty lists.
//
// # Location Matching
//
// A location slot is free text ("Berlin", "berlin mitte", "10243"). Both the
// slot and a facility's city are normalized (trim, lowercase) and a facility
// matches when either string contains the other. The first match in dataset
// order wins. Hospitals fall back to a random pick when nothing matches;
// shelters do not.
//
// When a geocoder is configured, the slot may also carry a resolved city
// ("10243" -> "Berlin"). It is only tried when the raw text matches no
// facility of that type. Messages always echo the raw text the user typed.
//
// # Sampling
//
// Advice sections show a bounded number of tips. [PickLines] returns short
// lists unchanged and samples longer ones without replacement, so repeated
// questions get varied answers. The random source is injected ([Rand]) so
// tests can seed it.
//
// # Slots
//
// Boolean slots (injuries, trapped) are tri-state: only an explicit true
// selects the "yes" branch; false and unknown share the other branch.
package domain
