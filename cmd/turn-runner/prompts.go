package main

// Appended to the user prompt when the first model reply could not be parsed.
const strictJSONReminder = `

IMPORTANT: Your previous answer was not valid JSON. Reply again with ONLY the JSON object described in the system prompt: no markdown, no text before or after it.`

// Sent instead of a reply that leaked the security token.
const canaryFallbackResponse = "Desculpe, me confundi aqui. Pode repetir sua última mensagem?"
