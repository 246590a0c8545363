package resolve

import (
	"sort"
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
	"github.com/surgebase/porter2"

	"github.com/ariadne-lang/ariadne/internal/ariadne/types"
	"github.com/ariadne-lang/ariadne/internal/debug"
)

// heuristicThreshold is the minimum blended similarity score a candidate
// needs to surface as a heuristic_match resolution (§4.9's "possible"
// confidence tier). Below this, a miss is reported as unresolved rather
// than as noise.
const heuristicThreshold = 0.72

// maxHeuristicCandidates caps how many heuristic_match resolutions one
// call site can accumulate, so a common, generic method name doesn't
// flood a call site with dozens of low-value guesses.
const maxHeuristicCandidates = 3

// ResolveCall implements C9: dispatches one call-site reference to every
// plausible target, tagging each with a Confidence and ResolutionReason.
// Multiple resolutions on a single call are genuine polymorphism
// (interface dispatch, collection-of-interface iteration), not an
// expression of uncertainty — only heuristic_match resolutions represent
// actual uncertainty.
func ResolveCall(reg *Registries, file types.FilePath, ref *types.Reference) *types.CallReference {
	cr := &types.CallReference{
		Location:      ref.Location,
		Name:          ref.Name,
		CallType:      ref.CallType,
		CallerScopeID: ref.ScopeID,
	}
	if caller, ok := EnclosingCallable(reg, file, ref.ScopeID); ok {
		cr.CallerSymbolId = caller.SymbolId
	}

	cr.Arguments = ref.Arguments

	if ref.CallType == types.CallFunction && cr.CallerSymbolId != "" {
		if idx, ok := callbackParamIndex(reg, cr.CallerSymbolId, ref.Name); ok {
			cr.IsCallbackInvocation = true
			cr.CallbackParamIndex = idx
			debug.LogResolve("%s:%d call to %q is a callback invocation (param %d)", file, ref.Location.StartLine, ref.Name, idx)
		}
	}

	switch ref.CallType {
	case types.CallFunction:
		cr.Resolutions = resolveFunctionCall(reg, file, ref)
	case types.CallMethod:
		cr.Resolutions = resolveMethodCall(reg, file, ref)
	case types.CallConstructor:
		cr.Resolutions = resolveConstructorCall(reg, file, ref)
	}

	if len(cr.Resolutions) == 0 && !cr.IsCallbackInvocation {
		cr.Resolutions = heuristicMatch(reg, ref.Name, candidateKindsFor(ref.CallType))
		if len(cr.Resolutions) > 0 {
			debug.LogResolve("%s:%d call to %q fell through to heuristic match", file, ref.Location.StartLine, ref.Name)
		}
	}

	sortResolutions(reg, cr.Resolutions)
	return cr
}

// callbackParamIndex reports whether name matches a parameter of the
// caller owning callerID, and at which position — the signal that marks
// a call a callback invocation rather than a call to a declared
// function (§4.9 "Callback invocations").
func callbackParamIndex(reg *Registries, callerID types.SymbolId, name string) (int, bool) {
	caller, ok := reg.Definitions.Get(callerID)
	if !ok || caller.Function == nil {
		return 0, false
	}
	for i, p := range caller.Function.Parameters {
		if p.Name == name {
			return i, true
		}
	}
	return 0, false
}

func candidateKindsFor(ct types.CallType) []types.DefinitionKind {
	switch ct {
	case types.CallMethod:
		return []types.DefinitionKind{types.DefMethod}
	case types.CallConstructor:
		return []types.DefinitionKind{types.DefConstructor, types.DefClass}
	default:
		return []types.DefinitionKind{types.DefFunction}
	}
}

func resolveFunctionCall(reg *Registries, file types.FilePath, ref *types.Reference) []types.Resolution {
	d, ok := ResolveName(reg, file, ref.Name, ref.ScopeID)
	if !ok || !d.IsCallable() {
		return nil
	}
	return []types.Resolution{directResolution(d.SymbolId)}
}

func resolveConstructorCall(reg *Registries, file types.FilePath, ref *types.Reference) []types.Resolution {
	candidates := reg.Types.ByName(ref.Name)
	var out []types.Resolution
	for _, typeID := range candidates {
		if desc, member, ok := reg.Types.ResolveMethod(typeID, "constructor"); ok {
			_ = desc
			out = append(out, directResolution(member.SymbolId))
			continue
		}
		if desc, member, ok := reg.Types.ResolveMethod(typeID, "__init__"); ok {
			_ = desc
			out = append(out, directResolution(member.SymbolId))
			continue
		}
		// No explicit constructor: resolves to the class's own symbol,
		// per the decision recorded for classes lacking one (§13).
		if classDef := OwnerDefinition(reg, typeID); classDef != nil {
			out = append(out, directResolution(classDef.SymbolId))
		}
	}
	return out
}

// OwnerDefinition finds the class/interface Definition a TypeId was
// derived from — the fallback constructor target when a class declares
// none, and find_subclasses/find_implementations' Definition lookup.
func OwnerDefinition(reg *Registries, typeID types.TypeId) *types.Definition {
	name := string(typeID.Name())
	file := typeID.File()
	for _, d := range reg.Definitions.ByFile(file) {
		if d.IsType() && d.Name == name {
			return d
		}
	}
	return nil
}

func resolveMethodCall(reg *Registries, file types.FilePath, ref *types.Reference) []types.Resolution {
	if ref.Receiver == nil {
		return nil
	}

	if res, recognized := resolveNamespaceMethodCall(reg, file, ref); recognized {
		return res
	}

	candidates := receiverTypeIDs(reg, file, ref)
	var out []types.Resolution
	seen := make(map[types.SymbolId]bool)

	for _, cand := range candidates {
		desc, member, ok := reg.Types.ResolveMethod(cand.typeID, ref.Name)
		if !ok {
			continue
		}
		if !seen[member.SymbolId] {
			out = append(out, methodResolution(member.SymbolId, cand))
			seen[member.SymbolId] = true
		}

		if desc.IsInterface {
			for _, subID := range transitiveSubtypes(reg, cand.typeID) {
				if subDesc, subMember, ok := reg.Types.ResolveMethod(subID, ref.Name); ok {
					if !seen[subMember.SymbolId] {
						out = append(out, types.Resolution{
							SymbolId:   subMember.SymbolId,
							Confidence: types.ConfidenceProbable,
							Reason: types.ResolutionReason{
								Kind:        types.ReasonInterfaceImplementation,
								InterfaceId: cand.typeID,
							},
						})
						seen[subMember.SymbolId] = true
					}
					_ = subDesc
				}
			}
		}
	}
	return out
}

// resolveNamespaceMethodCall implements §4.9(b)(3): a namespace import
// (`import * as ns from "./mod"`) or Python module-as-named import
// (`from pkg import submodule`) receiver dispatches its method name
// through the resolved target file's export chain, never through a
// declared type. The bool result tells resolveMethodCall whether the
// receiver was recognized as one of these import kinds at all, so a
// miss here still falls through to the normal type-based dispatch
// instead of being silently treated as "no method found".
func resolveNamespaceMethodCall(reg *Registries, file types.FilePath, ref *types.Reference) ([]types.Resolution, bool) {
	if ref.Receiver.Kind != types.ReceiverIdentifier {
		return nil, false
	}
	ri, ok := reg.Imports.ResolveLocalImport(file, ref.Receiver.Name)
	if !ok || !ri.Resolved || ri.Definition.Import == nil {
		return nil, false
	}
	if ri.Definition.Import.Kind != types.ImportNamespace && !ri.Definition.Import.IsModuleAsNamed {
		return nil, false
	}
	d, found := reg.Exports.ResolveExportChain(ri.Target, ref.Name, reg.Imports)
	if !found {
		return nil, true
	}
	return []types.Resolution{directResolution(d.SymbolId)}, true
}

// receiverTypeCandidate is one declared-type candidate for a method
// call's receiver, tagged with how it was derived: collectionID is set
// when typeID came from a collection annotation's element type rather
// than the receiver's own declared type (§4.9(b)(4)), so
// resolveMethodCall can pick the right ResolutionReason.
type receiverTypeCandidate struct {
	typeID       types.TypeId
	collectionID types.SymbolId
}

// receiverTypeIDs determines the candidate declared type(s) of a method
// call's receiver: this/self resolves to the enclosing class; an
// identifier resolves through its declared type annotation; a literal
// receiver's built-in type is inferred from its source text. When the
// receiver has no declared type of its own but its annotation describes
// a typed collection ("List[Foo]", "Array<Foo>", "Vec<Foo>"), the
// element type is used instead and tagged as a collection_member
// candidate, since the method is reached through some element of the
// collection, not the collection variable itself (§4.9(b)(4)).
func receiverTypeIDs(reg *Registries, file types.FilePath, ref *types.Reference) []receiverTypeCandidate {
	switch ref.Receiver.Kind {
	case types.ReceiverThis, types.ReceiverSelf:
		if classDef, ok := EnclosingClass(reg, file, ref.ScopeID); ok {
			return directCandidates([]types.TypeId{types.NewTypeId(classDef.Name, file)})
		}
		return nil
	case types.ReceiverLiteral:
		if name, ok := literalTypeFromText(ref.Receiver.Text); ok {
			return directCandidates(reg.Types.ByName(types.SymbolName(name)))
		}
		return nil
	case types.ReceiverIdentifier:
		d, ok := ResolveName(reg, file, ref.Receiver.Name, ref.ScopeID)
		if !ok || d.Variable == nil {
			return nil
		}
		if d.Variable.DeclaredTypeName != "" {
			return directCandidates(preferSameFile(reg.Types.ByName(d.Variable.DeclaredTypeName), file))
		}
		elemName := elementTypeFromAnnotation(d.Variable.TypeAnnotation)
		if elemName == "" {
			return nil
		}
		ids := preferSameFile(reg.Types.ByName(types.SymbolName(elemName)), file)
		out := make([]receiverTypeCandidate, 0, len(ids))
		for _, id := range ids {
			out = append(out, receiverTypeCandidate{typeID: id, collectionID: d.SymbolId})
		}
		return out
	default:
		return nil
	}
}

func directCandidates(ids []types.TypeId) []receiverTypeCandidate {
	out := make([]receiverTypeCandidate, 0, len(ids))
	for _, id := range ids {
		out = append(out, receiverTypeCandidate{typeID: id})
	}
	return out
}

// methodResolution tags a resolved method target direct or
// collection_member depending on how its receiver candidate was derived.
func methodResolution(id types.SymbolId, cand receiverTypeCandidate) types.Resolution {
	if cand.collectionID == "" {
		return directResolution(id)
	}
	return types.Resolution{
		SymbolId:   id,
		Confidence: types.ConfidenceProbable,
		Reason: types.ResolutionReason{
			Kind:          types.ReasonCollectionMember,
			CollectionId:  cand.collectionID,
			AccessPattern: "element",
		},
	}
}

func preferSameFile(ids []types.TypeId, file types.FilePath) []types.TypeId {
	var sameFile []types.TypeId
	for _, id := range ids {
		if id.File() == file {
			sameFile = append(sameFile, id)
		}
	}
	if len(sameFile) > 0 {
		return sameFile
	}
	return ids
}

func literalTypeFromText(text string) (string, bool) {
	t := strings.TrimSpace(text)
	switch {
	case strings.HasPrefix(t, "["):
		return "Array", true
	case strings.HasPrefix(t, "{"):
		return "Object", true
	case strings.HasPrefix(t, `"`) || strings.HasPrefix(t, "'"):
		return "String", true
	default:
		return "", false
	}
}

// elementTypeFromAnnotation extracts "Foo" out of "List[Foo]",
// "Array<Foo>" or "Vec<Foo>"-style generic annotations, used for
// collection_member dispatch when iterating a typed collection.
func elementTypeFromAnnotation(annotation string) string {
	open := strings.IndexAny(annotation, "[<")
	close := strings.LastIndexAny(annotation, "]>")
	if open < 0 || close < 0 || close <= open+1 {
		return ""
	}
	return strings.TrimSpace(annotation[open+1 : close])
}

func transitiveSubtypes(reg *Registries, id types.TypeId) []types.TypeId {
	visited := make(map[types.TypeId]bool)
	var out []types.TypeId
	queue := reg.Types.Subtypes(id)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if visited[cur] {
			continue
		}
		visited[cur] = true
		out = append(out, cur)
		queue = append(queue, reg.Types.Subtypes(cur)...)
	}
	return out
}

func directResolution(id types.SymbolId) types.Resolution {
	return types.Resolution{
		SymbolId:   id,
		Confidence: types.ConfidenceCertain,
		Reason:     types.ResolutionReason{Kind: types.ReasonDirect},
	}
}

// heuristicMatch is the last-resort fuzzy fallback: blend a
// Jaro-Winkler character-level similarity (go-edlib) with a token-set
// comparison over Porter2-stemmed, case-split name segments, so
// `fetchUser` and `fetch_user_record` score meaningfully close without
// either signal alone over- or under-matching.
func heuristicMatch(reg *Registries, name string, kinds []types.DefinitionKind) []types.Resolution {
	type scored struct {
		id    types.SymbolId
		score float64
	}
	var candidates []scored
	for _, kind := range kinds {
		for _, d := range reg.Definitions.ByKind(kind) {
			if d.Name == name {
				continue // exact matches are handled by direct resolution
			}
			score := blendedSimilarity(name, d.Name)
			if score >= heuristicThreshold {
				candidates = append(candidates, scored{id: d.SymbolId, score: score})
			}
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })
	if len(candidates) > maxHeuristicCandidates {
		candidates = candidates[:maxHeuristicCandidates]
	}

	out := make([]types.Resolution, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, types.Resolution{
			SymbolId:   c.id,
			Confidence: types.ConfidencePossible,
			Reason:     types.ResolutionReason{Kind: types.ReasonHeuristicMatch, Score: c.score},
		})
	}
	return out
}

func blendedSimilarity(a, b string) float64 {
	charSim, err := edlib.StringsSimilarity(a, b, edlib.JaroWinkler)
	if err != nil {
		charSim = 0
	}
	tokenSim := tokenSetSimilarity(a, b)
	return 0.5*float64(charSim) + 0.5*tokenSim
}

func tokenSetSimilarity(a, b string) float64 {
	ta := stemmedTokens(a)
	tb := stemmedTokens(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	matches := 0
	for t := range ta {
		if tb[t] {
			matches++
		}
	}
	union := len(ta) + len(tb) - matches
	if union == 0 {
		return 0
	}
	return float64(matches) / float64(union)
}

func stemmedTokens(name string) map[string]bool {
	out := make(map[string]bool)
	for _, word := range splitIdentifier(name) {
		if word == "" {
			continue
		}
		out[porter2.Stem(strings.ToLower(word))] = true
	}
	return out
}

// splitIdentifier breaks camelCase, PascalCase and snake_case names into
// lowercase words.
func splitIdentifier(name string) []string {
	var words []string
	var cur strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-':
			if cur.Len() > 0 {
				words = append(words, cur.String())
				cur.Reset()
			}
		case unicode.IsUpper(r) && cur.Len() > 0 && !unicode.IsUpper(runes[i-1]):
			words = append(words, cur.String())
			cur.Reset()
			cur.WriteRune(unicode.ToLower(r))
		default:
			cur.WriteRune(unicode.ToLower(r))
		}
	}
	if cur.Len() > 0 {
		words = append(words, cur.String())
	}
	return words
}

// sortResolutions orders resolutions deterministically: certain before
// probable before possible, then by (file, line, column) of the target
// symbol, matching §4.9's tie-break rule.
func sortResolutions(reg *Registries, resolutions []types.Resolution) {
	rank := map[types.Confidence]int{
		types.ConfidenceCertain:  0,
		types.ConfidenceProbable: 1,
		types.ConfidencePossible: 2,
	}
	sort.SliceStable(resolutions, func(i, j int) bool {
		ri, rj := rank[resolutions[i].Confidence], rank[resolutions[j].Confidence]
		if ri != rj {
			return ri < rj
		}
		di, okI := reg.Definitions.Get(resolutions[i].SymbolId)
		dj, okJ := reg.Definitions.Get(resolutions[j].SymbolId)
		if okI && okJ && di.Location != dj.Location {
			return less(di.Location, dj.Location)
		}
		return resolutions[i].SymbolId < resolutions[j].SymbolId
	})
}
