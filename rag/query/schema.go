package query

import (
	"github.com/dRAOUF1/RAG-Assistant/rag"
)

// ContextMapping resolves the reference markers placed in a prompt back to
// the chunks behind them. It is built by the Builder for one query and
// consumed by Format after generation.
type ContextMapping map[string]*rag.Chunk

// _promptTemplate instructs the model to answer only from the provided
// context and to cite with the [S<n>] markers the formatter can resolve.
const _promptTemplate = `You are a helpful and informative assistant answering questions about a collection of books, using only the reference context included below.
Answer with complete sentences, be comprehensive, and include all relevant information.
You are talking to a non-technical audience, so explain complex ideas simply.
If the context does not contain the answer, say so and decline rather than guessing.

VERY IMPORTANT: whenever your answer relies on a passage, cite it by writing its marker inline, exactly as it appears, e.g. [S1] or [S2].

Available sources:
%s

CONTEXT:
%s

QUESTION: '%s'

ANSWER:`

// _emptyContext is injected when answering without context is allowed and
// retrieval found nothing relevant.
const _emptyContext = "(no relevant passages were found in the selected sources)"
