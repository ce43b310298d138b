// Package locale holds the user-facing strings of the application and the
// language the external model is asked to answer in.
package locale

import "strings"

// DefaultTag is used when a profile does not name a language.
const DefaultTag = "pt-BR"

// Locale is one translation of every user-visible string.
type Locale struct {
	Tag string
	// Language is how the model is told which language to write in.
	Language string

	Title        string
	Headline     string
	Subtitle     string
	InputLabel   string
	InputHint    string
	Formats      string
	NotAnImage   string
	AnalysisFail string
	Busy         string
	NoAPIKey     string
	SendFailed   string

	AnalyzingTitle string
	AnalyzingWait  string
	AnalyzingSteps []string

	FailureTitle string
	TryAgain     string

	TotalEnergy      string
	VisualAccuracy   string
	NewAnalysis      string
	Breakdown        string
	Items            string
	DetectedItems    string
	HighAccuracy     string
	MediumAccuracy   string
	LowAccuracy      string
	Protein          string
	Carbs            string
	Fat              string
	AttentionPoints  string
	NutritionTips    string
	ShowReasoning    string
	HideReasoning    string
	StatusReady      string
	StatusAnalyzing  string
	StatusDone       string
	StatusFailed     string
	QuitHint         string
	ResultKeysHint   string
	FailureKeysHint  string
	LoadingImageHint string
}

var portuguese = Locale{
	Tag:      "pt-BR",
	Language: "Brazilian Portuguese (PORTUGUÊS DO BRASIL)",

	Title:        "NutriVision AI",
	Headline:     "Controle suas calorias com apenas uma foto.",
	Subtitle:     "Tire uma foto da sua refeição. Nossa Inteligência Artificial identifica os ingredientes e estima as porções instantaneamente.",
	InputLabel:   "Caminho da foto",
	InputHint:    "/caminho/para/refeicao.jpg",
	Formats:      "Formatos suportados: JPG, PNG, WEBP",
	NotAnImage:   "Por favor, envie um arquivo de imagem.",
	AnalysisFail: "Falha ao analisar a imagem. Tente novamente ou use uma foto mais clara.",
	Busy:         "Uma análise já está em andamento.",
	NoAPIKey:     "Nenhuma chave de API configurada. Execute: nutrivision profile add",
	SendFailed:   "Não foi possível enviar o pedido",

	AnalyzingTitle: "Analisando sua refeição...",
	AnalyzingWait:  "Isso pode levar alguns segundos.",
	AnalyzingSteps: []string{"Identificando ingredientes", "Estimando volumes e porções", "Calculando macronutrientes"},

	FailureTitle: "Falha na Análise",
	TryAgain:     "Tentar Novamente",

	TotalEnergy:      "Energia Total Estimada",
	VisualAccuracy:   "Precisão Visual",
	NewAnalysis:      "Nova Análise",
	Breakdown:        "Distribuição Calórica",
	Items:            "Itens",
	DetectedItems:    "Itens Detectados",
	HighAccuracy:     "Alta Precisão",
	MediumAccuracy:   "Média Precisão",
	LowAccuracy:      "Baixa Precisão",
	Protein:          "Prot",
	Carbs:            "Carb",
	Fat:              "Gord",
	AttentionPoints:  "Pontos de Atenção",
	NutritionTips:    "Dicas de Nutrição",
	ShowReasoning:    "Ver Lógica da Inteligência Artificial",
	HideReasoning:    "Ocultar Lógica da Inteligência Artificial",
	StatusReady:      "Pronto",
	StatusAnalyzing:  "Analisando",
	StatusDone:       "Análise concluída",
	StatusFailed:     "Falha",
	QuitHint:         "ctrl+c: sair",
	ResultKeysHint:   "n: nova análise • tab: lógica da IA • ctrl+c: sair",
	FailureKeysHint:  "enter: tentar novamente • ctrl+c: sair",
	LoadingImageHint: "Carregando imagem",
}

var english = Locale{
	Tag:      "en",
	Language: "English",

	Title:        "NutriVision AI",
	Headline:     "Track your calories with a single photo.",
	Subtitle:     "Take a picture of your meal. Our AI identifies the ingredients and estimates the portions instantly.",
	InputLabel:   "Photo path",
	InputHint:    "/path/to/meal.jpg",
	Formats:      "Supported formats: JPG, PNG, WEBP",
	NotAnImage:   "Please provide an image file.",
	AnalysisFail: "Failed to analyze the image. Try again or use a clearer photo.",
	Busy:         "An analysis is already running.",
	NoAPIKey:     "No API key configured. Run: nutrivision profile add",
	SendFailed:   "Could not send the request",

	AnalyzingTitle: "Analyzing your meal...",
	AnalyzingWait:  "This may take a few seconds.",
	AnalyzingSteps: []string{"Identifying ingredients", "Estimating volumes and portions", "Computing macronutrients"},

	FailureTitle: "Analysis Failed",
	TryAgain:     "Try Again",

	TotalEnergy:      "Estimated Total Energy",
	VisualAccuracy:   "Visual Accuracy",
	NewAnalysis:      "New Analysis",
	Breakdown:        "Calorie Breakdown",
	Items:            "Items",
	DetectedItems:    "Detected Items",
	HighAccuracy:     "High Accuracy",
	MediumAccuracy:   "Medium Accuracy",
	LowAccuracy:      "Low Accuracy",
	Protein:          "Prot",
	Carbs:            "Carb",
	Fat:              "Fat",
	AttentionPoints:  "Attention Points",
	NutritionTips:    "Nutrition Tips",
	ShowReasoning:    "Show AI Reasoning",
	HideReasoning:    "Hide AI Reasoning",
	StatusReady:      "Ready",
	StatusAnalyzing:  "Analyzing",
	StatusDone:       "Analysis complete",
	StatusFailed:     "Failed",
	QuitHint:         "ctrl+c: quit",
	ResultKeysHint:   "n: new analysis • tab: AI reasoning • ctrl+c: quit",
	FailureKeysHint:  "enter: try again • ctrl+c: quit",
	LoadingImageHint: "Loading image",
}

// Lookup returns the locale for tag. Matching is case-insensitive and falls
// back on the primary subtag ("en-US" -> "en"), then on DefaultTag.
func Lookup(tag string) Locale {
	switch primary(tag) {
	case "en":
		return english
	case "pt":
		return portuguese
	}
	return portuguese
}

// Supported lists the tags Lookup understands.
func Supported() []string {
	return []string{portuguese.Tag, english.Tag}
}

func primary(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if i := strings.IndexAny(tag, "-_"); i >= 0 {
		tag = tag[:i]
	}
	return tag
}
