package tools

// Serializers are pure field projections from the raw GitHub response shape
// to the normalized shape returned to callers. Each one passes non-object
// input through untouched, so a surprise upstream shape degrades gracefully
// instead of faulting the handler.

const maxFileContent = 5000

// safeList applies a serializer to a single object or element-wise to a
// list. nil stays nil.
func safeList(data any, serialize func(map[string]any) map[string]any) any {
	switch v := data.(type) {
	case nil:
		return nil
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = applyOne(item, serialize)
		}
		return out
	default:
		return applyOne(data, serialize)
	}
}

func applyOne(item any, serialize func(map[string]any) map[string]any) any {
	obj, ok := item.(map[string]any)
	if !ok {
		return item
	}
	return serialize(obj)
}

func serializeUser(user map[string]any) map[string]any {
	return map[string]any{
		"id":    user["id"],
		"login": user["login"],
		"name":  user["name"],
		"url":   firstNonNil(user["html_url"], user["url"]),
	}
}

func serializeRepo(repo map[string]any) map[string]any {
	return map[string]any{
		"id":             repo["id"],
		"name":           repo["name"],
		"full_name":      repo["full_name"],
		"private":        repo["private"],
		"url":            firstNonNil(repo["html_url"], repo["url"]),
		"default_branch": repo["default_branch"],
		"language":       repo["language"],
		"stars":          numberOrZero(repo["stargazers_count"]),
		"forks":          numberOrZero(repo["forks_count"]),
		"open_issues":    numberOrZero(repo["open_issues_count"]),
		"updated_at":     repo["updated_at"],
	}
}

func serializeIssue(issue map[string]any) map[string]any {
	return map[string]any{
		"id":         issue["id"],
		"number":     issue["number"],
		"title":      issue["title"],
		"state":      issue["state"],
		"url":        firstNonNil(issue["html_url"], issue["url"]),
		"created_at": issue["created_at"],
		"updated_at": issue["updated_at"],
		"comments":   numberOrZero(issue["comments"]),
		"author":     nestedString(issue, "user", "login"),
		"body":       stringOrEmpty(issue["body"]),
	}
}

func serializePullRequest(pr map[string]any) map[string]any {
	merged, _ := pr["merged"].(bool)
	return map[string]any{
		"id":         pr["id"],
		"number":     pr["number"],
		"title":      pr["title"],
		"state":      pr["state"],
		"url":        firstNonNil(pr["html_url"], pr["url"]),
		"created_at": pr["created_at"],
		"merged":     merged,
		"author":     nestedString(pr, "user", "login"),
	}
}

func serializeCommit(obj map[string]any) map[string]any {
	commit, _ := obj["commit"].(map[string]any)
	commitAuthor, _ := commit["author"].(map[string]any)

	// The top-level author node is the GitHub account; the commit author is
	// whatever the commit metadata says. Prefer the account login.
	author := nestedString(obj, "author", "login")
	if author == "" {
		author = stringOrEmpty(commitAuthor["name"])
	}

	return map[string]any{
		"sha":     obj["sha"],
		"message": stringOrEmpty(commit["message"]),
		"author":  author,
		"date":    stringOrEmpty(commitAuthor["date"]),
		"url":     firstNonNil(obj["html_url"], obj["url"]),
	}
}

func serializeFile(file map[string]any) map[string]any {
	content := stringOrEmpty(file["content"])
	if len(content) > maxFileContent {
		content = content[:maxFileContent] + "\n...[Content Truncated]..."
	}
	return map[string]any{
		"name":     file["name"],
		"path":     file["path"],
		"size":     file["size"],
		"content":  content,
		"encoding": file["encoding"],
	}
}

func firstNonNil(vals ...any) any {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}

func nestedString(obj map[string]any, key, sub string) string {
	inner, _ := obj[key].(map[string]any)
	return stringOrEmpty(inner[sub])
}

func stringOrEmpty(v any) string {
	s, _ := v.(string)
	return s
}

func numberOrZero(v any) any {
	if v == nil {
		return float64(0)
	}
	return v
}
