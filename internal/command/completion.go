// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/revdiff/internal/meta"
)

const bashCompletionScript = `# bash completion for revdiff
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_revdiff()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "diff venn stamp commit log pick show completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--color -c --output -o --sort -s --titles -t"
    local source="--path -p --passphrase --profile --region --endpoint"
    local differ="--filter -f --ignore -i --id-field --no-property-diff --no-unchanged --show-changes -d --strict --workers -w"

    case "$cmd" in
        diff)
            local opts="$common $source $differ"
            ;;
        venn)
            local opts="$common $source --ignore -i"
            ;;
        stamp)
            local opts="$common $source --ignore -i --out --encrypt"
            ;;
        commit)
            local opts="$common $source --db --ignore -i --label -l"
            ;;
        log|show)
            local opts="$common --db"
            ;;
        pick)
            local opts="$common $differ --db"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json yaml" -- "$cur") )
        return 0
    fi

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    # Snapshot arguments are files.
    COMPREPLY=( $(compgen -f -- "$cur") )
    return 0
}

complete -F _revdiff revdiff
`

const zshCompletionScript = `#compdef revdiff

_revdiff() {
  local -a cmds
  cmds=(
    'diff:classify objects of two snapshot revisions'
    'venn:partition two snapshots by content'
    'stamp:advance the hash chain of a snapshot'
    'commit:store a snapshot as a new revision'
    'log:list stored revisions'
    'pick:choose two stored revisions and diff them'
    'show:print the stored object with a hash'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-o --output)'{-o,--output}'[output format]:format:(text json yaml)'
  '(-s --sort)'{-s,--sort}'[sort columns]:columns'
  '(-t --titles)'{-t,--titles}'[show titles]'
  )

  local -a source
  source=(
  '(-p --path)'{-p,--path}'[gjson query for the object array]:query'
  '--passphrase[passphrase for encrypted snapshots]:passphrase'
  '--profile[AWS profile]:profile'
  '--region[AWS region]:region'
  '--endpoint[S3 endpoint]:url'
  )

  local -a differ
  differ=(
  '(-f --filter)'{-f,--filter}'[object filters]:filters'
  '(-i --ignore)'{-i,--ignore}'[properties to exclude]:names'
  '--id-field[match on this CustomData key]:field'
  '--no-property-diff[skip property deltas]'
  '--no-unchanged[drop unchanged objects]'
  '(-d --show-changes)'{-d,--show-changes}'[render deltas]'
  '--strict[fail on duplicate identities]'
  '(-w --workers)'{-w,--workers}'[parallel workers]:n'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'revdiff commands' cmds
    return
  fi

  case $words[2] in
    diff)
      _arguments $common $source $differ '1:previous:_files' '2:current:_files'
      ;;
    venn)
      _arguments $common $source '(-i --ignore)'{-i,--ignore}'[properties to exclude]:names' '1:a:_files' '2:b:_files'
      ;;
    stamp)
      _arguments $common $source '--out[output file]:file:_files' '--encrypt[seal output]' '1:in:_files'
      ;;
    commit)
      _arguments $common $source '--db[revision store]:file:_files' '(-l --label)'{-l,--label}'[label]:label' '1:in:_files'
      ;;
    log)
      _arguments $common '--db[revision store]:file:_files'
      ;;
    show)
      _arguments $common '--db[revision store]:file:_files' '1:hash'
      ;;
    pick)
      _arguments $common $differ '--db[revision store]:file:_files'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments $common '*:file:_files'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _revdiff revdiff
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	w := writer(cmd)
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			fmt.Fprint(w, zshCompletionScript)
		case strings.HasSuffix(sh, "bash"):
			fmt.Fprint(w, bashCompletionScript)
		default:
			fmt.Fprintln(os.Stderr, "usage: revdiff completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "revdiff completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
