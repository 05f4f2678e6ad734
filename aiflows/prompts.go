package aiflows

import "text/template"

const jsonInstruction = "Answer with a single JSON object that matches the requested fields exactly. Do not wrap it in markdown."

var voicePrompt = template.Must(template.New(FlowVoiceProductUpload).Parse(
	`You are an assistant helping farmers list their products on an online marketplace using voice input.
Extract the product details from the farmer's words below.

Voice input: {{.VoiceInput}}

Return JSON with these fields:
- "productName": the name of the product.
- "location": where the product is grown or produced.
- "price": the price as a number, without currency symbols.
- "unit": the unit of measurement (kg, pound, dozen, ...).
If a value is not mentioned, make a sensible guess from context.`))

var weatherPrompt = template.Must(template.New(FlowWeatherAdvice).Parse(
	`You are an expert agricultural advisor specializing in weather-based farming guidance.
Location: {{.Location}}
Respond entirely in the language: {{.Language}}.

Return JSON with these fields, written in {{.Language}}:
- "weatherSummary": a concise summary of the forecast for today and tomorrow.
- "farmingInstructions": 2-3 specific, actionable farming tips for this weather and the typical crops of the region.
- "monthlyOutlook": a brief agricultural outlook for the next month, considering seasonal patterns.
If the location is too general, advise for a major agricultural area within it.`))

var newsPrompt = template.Must(template.New(FlowFarmingNews).Parse(
	`You are an agricultural news editor.
Summarize the {{.Count}} most relevant recent farming news stories for the region: {{.Region}}.
Write the titles and summaries in {{.Language}}.

Return JSON with a "newsItems" array. Each item has:
- "title": the headline.
- "summary": a concise summary.
- "source": the publisher, if known.
- "publishedDate": the publication date in ISO 8601, if known.`))

var pricePrompt = template.Must(template.New(FlowPricePrediction).Parse(
	`You are an agricultural market analyst.
Suggest a fair selling price for the following product.

Product: {{.ProductType}}
Unit: {{.Unit}}
Market location: {{.Location}}
{{if .CurrentMarketInfo}}Farmer's market observations: {{.CurrentMarketInfo}}
{{end}}
Write the answer in {{.Language}}. Return JSON with these fields:
- "suggestedPriceRange": the suggested price range per {{.Unit}}, with currency.
- "reasoning": the factors considered (demand, seasonality, regional averages, input costs).
- "confidence": "High", "Medium" or "Low".`))

var salesPrompt = template.Must(template.New(FlowSalesInsights).Parse(
	`You are a senior data analyst specializing in agricultural sales.
A farmer has shared their sales data and needs your analysis.

Sales data (JSON):
{{.SalesDataJSON}}

{{if .TimePeriod}}Time period covered: {{.TimePeriod}}
{{end}}{{if .FarmerSpecificGoals}}Farmer's goals or questions: {{.FarmerSpecificGoals}}
{{end}}
Write the answer in {{.Language}}. Return JSON with these fields:
- "overallSummary": a 1-2 sentence summary of sales performance.
- "keyInsights": 2-4 specific, data-driven insights.
- "actionableRecommendations": 2-3 practical steps to improve sales, inventory or pricing.
- "demandForecast": optional short forecast for 1-2 key products.
- "seasonalTrends": optional notes on seasonal trends.
If the data is sparse, say so and give more general advice.`))
