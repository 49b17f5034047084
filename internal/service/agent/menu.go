package agent

import (
	"fmt"

	"github.com/sandevgo/mentoria/internal/core"
)

const (
	personality = "jarvis"

	// FieldMenuOption is the reserved structured-input field for menu picks.
	FieldMenuOption = "menu_option"

	OptionProfile = "perfil"
	OptionCustom  = "otro"

	defaultUserName = "Docente"
	resumeFallback  = "Continuar"
)

var menuOptions = []core.MenuOption{
	{Label: "📚 Ayuda con Planeaciones", Value: "planeaciones", Description: "Crear y mejorar planeaciones didácticas"},
	{Label: "📖 Materiales Educativos (MEDs)", Value: "meds", Description: "Buscar y crear materiales educativos"},
	{Label: "🎯 Evaluación y Diagnóstico", Value: "evaluacion", Description: "Herramientas de evaluación y diagnóstico educativo"},
	{Label: "🔧 Metodologías de Enseñanza", Value: "metodologias", Description: "Estrategias y metodologías pedagógicas"},
	{Label: "📋 Programas Analíticos", Value: "programas", Description: "Ayuda con programas analíticos y secuencias"},
	{Label: "❓ Preguntas Generales", Value: "general", Description: "Consultas generales sobre educación"},
	{Label: "⚙️ Configurar Perfil", Value: OptionProfile, Description: "Actualizar información de su perfil"},
	{Label: "✍️ Escribir Consulta Personalizada", Value: OptionCustom, Description: "Escribir su consulta específica directamente"},
}

// topicQueries maps content menu options to the search phrase sent to the router.
var topicQueries = map[string]string{
	"planeaciones": "planeaciones didácticas para educación",
	"meds":         "materiales educativos digitales",
	"evaluacion":   "herramientas de evaluación educativa",
	"metodologias": "metodologías de enseñanza",
	"programas":    "programas analíticos educativos",
}

var profileQuestions = []core.Question{
	{
		FieldName:    "nivel",
		QuestionText: "¿En qué nivel educativo enseña?",
		Options: []core.Option{
			{Label: "Preescolar", Value: "preescolar"},
			{Label: "Primaria", Value: "primaria"},
			{Label: "Secundaria", Value: "secundaria"},
			{Label: "Preparatoria", Value: "preparatoria"},
			{Label: "Universidad", Value: "universidad"},
		},
	},
	{
		FieldName:    "grado",
		QuestionText: "¿Qué grado específico maneja?",
		Options: []core.Option{
			{Label: "1er Grado", Value: "primero"},
			{Label: "2do Grado", Value: "segundo"},
			{Label: "3er Grado", Value: "tercero"},
			{Label: "4to Grado", Value: "cuarto"},
			{Label: "5to Grado", Value: "quinto"},
			{Label: "6to Grado", Value: "sexto"},
		},
	},
	{
		FieldName:    "materia",
		QuestionText: "¿Qué materia o área enseña principalmente?",
		Options: []core.Option{
			{Label: "Matemáticas", Value: "matematicas"},
			{Label: "Español", Value: "espanol"},
			{Label: "Ciencias Naturales", Value: "ciencias"},
			{Label: "Historia", Value: "historia"},
			{Label: "Geografía", Value: "geografia"},
			{Label: "Educación Física", Value: "edfisica"},
			{Label: "Artes", Value: "artes"},
			{Label: "Otra", Value: "otra"},
		},
	},
}

const welcomeTemplate = `¡Bienvenido, %s! Soy MentorIA, su asistente educativo personal.

Como su fiel asistente, estoy aquí para ayudarle con todas sus necesidades educativas.
He sido programado para ser su compañero en esta noble misión de educar.

¿En qué puedo asistirle hoy?`

const profileSetupMessage = `Excelente elección, señor. Para brindarle la mejor asistencia posible,
necesito conocer algunos detalles sobre su contexto educativo.

Permítame configurar su perfil para optimizar mis respuestas.`

const customQueryMessage = `Excelente elección, señor. Permítame asistirle con su consulta personalizada.

Por favor, escriba su pregunta o solicitud específica y haré todo lo posible
por brindarle la mejor asistencia posible.`

// MenuOptions returns the welcome menu.
func MenuOptions() []core.MenuOption {
	return append([]core.MenuOption(nil), menuOptions...)
}

// MenuLabel returns the display label of a menu value, or the value itself.
func MenuLabel(value string) string {
	for _, o := range menuOptions {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

func welcomeData(profile core.UserProfile) core.WelcomeData {
	name := defaultUserName
	if v, ok := profile["nombre"].(string); ok && v != "" {
		name = v
	}
	return core.WelcomeData{
		Message:     fmt.Sprintf(welcomeTemplate, name),
		Options:     MenuOptions(),
		Personality: personality,
		ShowTyping:  true,
	}
}

func profileSetupData() core.ButtonsData {
	questions := make([]core.Question, len(profileQuestions))
	copy(questions, profileQuestions)
	return core.ButtonsData{
		Message:     profileSetupMessage,
		Questions:   questions,
		Personality: personality,
	}
}

func customQueryData() core.TextInputData {
	return core.TextInputData{
		Message:         customQueryMessage,
		Placeholder:     "Escriba su consulta aquí...",
		Personality:     personality,
		WaitingForInput: true,
	}
}

// menuMessage turns a content menu pick into the effective message.
func menuMessage(value string) string {
	if q, ok := topicQueries[value]; ok {
		return "Buscar " + q
	}
	return "El usuario seleccionó: " + value
}
