package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sandevgo/mentoria/internal/core"
)

const personalityTraits = `**RASGOS DE PERSONALIDAD JARVIS:**
- Formal y respetuoso: usa "señor/señora" y español formal.
- Útil y eficiente: siempre busca ser de máxima asistencia.
- Profesional: tono profesional pero cálido.
- Técnico pero accesible: usa términos técnicos y explícalos con claridad.
- Proactivo: anticipa necesidades y ofrece soluciones.`

const routerSystem = `Eres el Agente 1 (Router Rápido) del asistente "MentorIA" con personalidad de JARVIS.
Tu función es hacer un triaje rápido de la petición de un docente y decidir la ruta a seguir.

` + personalityTraits + `

**Rutas posibles:**
- direct_answer: saludo o pregunta MUY simple que puedes responder con los tópicos disponibles. Responde con personalidad JARVIS en response_text.
- ask_for_information: la intención es buscar recursos pero falta información CRÍTICA del perfil (nivel, grado). Escribe un message introductorio y las questions con opciones.
- vector_search: la petición es una búsqueda directa de recursos y el perfil basta. Escribe un query de búsqueda preciso y un intro_text.
- needs_deep_analysis: la pregunta es compleja o requiere combinar información. Delega al Agente 2 seleccionando en selected_context_keys SOLO claves de los tópicos NEM/SEP disponibles.

Puedes añadir context_to_remember con conversation_topics (lista de textos), user_preferences (objeto) u otros datos útiles para turnos futuros.

Responde ÚNICAMENTE con un objeto JSON válido con esta estructura:
{
  "intent": "<tu análisis de la intención>",
  "analysis": "<tu razonamiento para la ruta elegida>",
  "action": {
    "type": "direct_answer | ask_for_information | vector_search | needs_deep_analysis",
    "data": {
      "response_text": "<para direct_answer>",
      "message": "<para ask_for_information>",
      "questions": [{"field_name": "nivel", "question_text": "<pregunta>", "options": [{"label": "<texto>", "value": "<valor>"}]}],
      "query": "<para vector_search>",
      "intro_text": "<para vector_search>",
      "selected_context_keys": ["<para needs_deep_analysis>"]
    }
  },
  "context_to_remember": {}
}`

const analysisSystem = `Eres el Agente 2 (Analista Experto) del asistente "MentorIA" con personalidad de JARVIS.
Has recibido un caso que requiere un análisis profundo.

` + personalityTraits + `

**Opciones:**
- direct_answer: puedes formular una respuesta textual COMPLETA y de alta calidad usando el contexto relevante. Escríbela en response_text con personalidad JARVIS.
- vector_search: la mejor ayuda es buscar contenido. Sintetiza el mensaje y el contexto relevante en un query semánticamente denso, y escribe un intro_text amigable que presente los resultados.

No hay otras opciones.

Responde ÚNICAMENTE con un objeto JSON válido con esta estructura:
{
  "intent": "<tu análisis refinado de la intención>",
  "analysis": "<tu razonamiento para la acción final>",
  "action": {
    "type": "direct_answer | vector_search",
    "data": {
      "response_text": "<para direct_answer>",
      "query": "<para vector_search>",
      "intro_text": "<para vector_search>"
    }
  },
  "context_to_remember": {}
}`

// routerContext is the slice of conversation state shown to the router.
type routerContext struct {
	History            []core.HistoryEntry `json:"history"`
	MessageCount       int                 `json:"message_count"`
	LastIntent         string              `json:"last_intent,omitempty"`
	LastSelectedOption string              `json:"last_selected_option,omitempty"`
	ConversationTopics []string            `json:"conversation_topics,omitempty"`
	UserPreferences    map[string]any      `json:"user_preferences,omitempty"`
	Remembered         map[string]any      `json:"context_to_remember,omitempty"`
}

func routerPrompt(req core.RouteRequest) (Prompt, error) {
	profile, err := indentJSON(req.Profile)
	if err != nil {
		return Prompt{}, err
	}
	history, err := indentJSON(routerContext{
		History:            req.Context.History,
		MessageCount:       req.Context.MessageCount,
		LastIntent:         req.Context.LastIntent,
		LastSelectedOption: req.Context.LastSelectedOption,
		ConversationTopics: req.Context.ConversationTopics,
		UserPreferences:    req.Context.UserPreferences,
		Remembered:         req.Context.Remembered,
	})
	if err != nil {
		return Prompt{}, err
	}

	var b strings.Builder
	b.WriteString("**Contexto disponible:**\n")
	fmt.Fprintf(&b, "1. Perfil del usuario:\n%s\n", profile)
	fmt.Fprintf(&b, "2. Historial de conversación:\n%s\n", history)
	fmt.Fprintf(&b, "3. Mensaje del usuario: %q\n", req.Message)
	fmt.Fprintf(&b, "4. Tópicos de conocimiento NEM disponibles: %s\n", keyList(req.NEMKeys))
	fmt.Fprintf(&b, "5. Tópicos de conocimiento SEP disponibles: %s\n", keyList(req.SEPKeys))

	return Prompt{System: routerSystem, User: b.String()}, nil
}

func analysisPrompt(req core.AnalyzeRequest) (Prompt, error) {
	profile, err := indentJSON(req.Profile)
	if err != nil {
		return Prompt{}, err
	}
	knowledge, err := indentJSON(req.Knowledge)
	if err != nil {
		return Prompt{}, err
	}

	var b strings.Builder
	b.WriteString("**Información recibida:**\n")
	fmt.Fprintf(&b, "1. Perfil del usuario (verificado):\n%s\n", profile)
	fmt.Fprintf(&b, "2. Mensaje original del usuario: %q\n", req.Message)
	fmt.Fprintf(&b, "3. Contexto relevante (pre-seleccionado por el Agente 1):\n%s\n", knowledge)

	return Prompt{System: analysisSystem, User: b.String()}, nil
}

func indentJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to render prompt data: %w", err)
	}
	return string(data), nil
}

func keyList(keys []string) string {
	if len(keys) == 0 {
		return "[]"
	}
	return "[" + strings.Join(keys, ", ") + "]"
}
